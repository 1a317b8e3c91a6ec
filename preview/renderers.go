package preview

import (
	"context"
	"fmt"
	"hourbox/file_io"
	"hourbox/files"
	L "hourbox/logger"
	"io"
	"path/filepath"
	"unicode/utf8"
)

// TextRenderer writes the content to w, truncated to maxBytes when set.
type TextRenderer struct {
	W        io.Writer
	MaxBytes int
}

func (r TextRenderer) Render(ctx context.Context, record files.FileRecord, data []byte) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("%s is not valid utf-8: %w", record.Name, ErrPreviewUnavailable)
	}
	truncated := false
	if r.MaxBytes > 0 && len(data) > r.MaxBytes {
		data = data[:r.MaxBytes]
		truncated = true
	}
	_, err := r.W.Write(data)
	if err != nil {
		return err
	}
	if truncated {
		_, err = fmt.Fprintf(r.W, "\n... truncated at %s\n", L.HumanReadableBytes(uint64(r.MaxBytes), 0))
	}
	return err
}

// FileRenderer writes the content to Dir and reports the path through
// OnWritten so an external viewer can open it.
type FileRenderer struct {
	Dir       string
	OnWritten func(path string)
}

func (r FileRenderer) Render(ctx context.Context, record files.FileRecord, data []byte) error {
	path := filepath.Join(r.Dir, record.Id+"-"+filepath.Base(record.Name))
	_, err := file_io.WriteToFile(path, data, file_io.WRITE_OVERWRITE)
	if err != nil {
		return fmt.Errorf("could not write preview: %w", err)
	}
	if r.OnWritten != nil {
		r.OnWritten(path)
	}
	return nil
}

// DefaultRenderers renders text to w and every binary kind into dir.
func DefaultRenderers(w io.Writer, dir string, onWritten func(path string)) map[Kind]Renderer {
	file := FileRenderer{Dir: dir, OnWritten: onWritten}
	return map[Kind]Renderer{
		KIND_TEXT:        TextRenderer{W: w, MaxBytes: 64 * 1024},
		KIND_PDF:         file,
		KIND_OFFICE:      file,
		KIND_SPREADSHEET: file,
		KIND_IMAGE:       file,
	}
}
