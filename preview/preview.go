package preview

import (
	"context"
	"errors"
	"fmt"
	"hourbox/files"
	L "hourbox/logger"
	"strings"
)

var ErrPreviewUnavailable = errors.New("preview unavailable for this file type")

type Kind string

const (
	KIND_PDF         Kind = "pdf"
	KIND_OFFICE      Kind = "office"
	KIND_SPREADSHEET Kind = "spreadsheet"
	KIND_TEXT        Kind = "text"
	KIND_IMAGE       Kind = "image"
)

var extensions = map[string]Kind{
	"pdf":  KIND_PDF,
	"doc":  KIND_OFFICE,
	"docx": KIND_OFFICE,
	"ppt":  KIND_OFFICE,
	"pptx": KIND_OFFICE,
	"odt":  KIND_OFFICE,
	"odp":  KIND_OFFICE,
	"xls":  KIND_SPREADSHEET,
	"xlsx": KIND_SPREADSHEET,
	"ods":  KIND_SPREADSHEET,
	"csv":  KIND_SPREADSHEET,
	"txt":  KIND_TEXT,
	"md":   KIND_TEXT,
	"json": KIND_TEXT,
	"log":  KIND_TEXT,
	"xml":  KIND_TEXT,
	"yaml": KIND_TEXT,
	"yml":  KIND_TEXT,
	"png":  KIND_IMAGE,
	"jpg":  KIND_IMAGE,
	"jpeg": KIND_IMAGE,
	"gif":  KIND_IMAGE,
	"webp": KIND_IMAGE,
	"svg":  KIND_IMAGE,
	"bmp":  KIND_IMAGE,
}

// KindOf matches the extension of name against the allow-list.
func KindOf(name string) (Kind, bool) {
	dot := strings.LastIndex(name, ".")
	if dot < 0 || dot == len(name)-1 {
		return "", false
	}
	kind, ok := extensions[strings.ToLower(name[dot+1:])]
	return kind, ok
}

type Retriever interface {
	Retrieve(ctx context.Context, fileId string) ([]byte, error)
}

type Renderer interface {
	Render(ctx context.Context, record files.FileRecord, data []byte) error
}

type Dispatcher struct {
	retriever Retriever
	renderers map[Kind]Renderer
}

func NewDispatcher(retriever Retriever, renderers map[Kind]Renderer) *Dispatcher {
	return &Dispatcher{retriever: retriever, renderers: renderers}
}

// Preview picks a renderer by extension. Unsupported files are rejected
// before any content is retrieved.
func (d *Dispatcher) Preview(ctx context.Context, record files.FileRecord) (Kind, error) {
	kind, ok := KindOf(record.Name)
	if !ok {
		return "", fmt.Errorf("%s: %w", record.Name, ErrPreviewUnavailable)
	}
	renderer, ok := d.renderers[kind]
	if !ok {
		return kind, fmt.Errorf("%s: no %s renderer: %w", record.Name, kind, ErrPreviewUnavailable)
	}
	data, err := d.retriever.Retrieve(ctx, record.Id)
	if err != nil {
		return kind, err
	}
	L.Debug(fmt.Sprintf("previewing %s as %s", record.Name, kind))
	return kind, renderer.Render(ctx, record, data)
}
