package archive

import (
	"archive/tar"
	"cmp"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"hourbox/file_io"
	"hourbox/files"
	L "hourbox/logger"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// TarGzArchive writes every stored file into a .tar.gz, laid out by folder.
type TarGzArchive struct {
	source     Source
	OutputPath string
	Progress   *Progress
	// OnProgress is called after each file is written
	OnProgress func(progress Progress, name string)
	dirs       []dirEntry
	entries    []Entry
}

type dirEntry struct {
	path      string
	createdAt time.Time
}

func NewTarGzArchive(source Source, outputPath string) (*TarGzArchive, error) {
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, err
	}
	parent := filepath.Dir(absPath)
	err = os.MkdirAll(parent, os.ModePerm)
	if err != nil {
		return nil, err
	}
	writable, err := file_io.IsWritable(parent)
	if err != nil || !writable {
		return nil, fmt.Errorf("no write permission on output path: %s", parent)
	}
	return &TarGzArchive{
		source:     source,
		OutputPath: absPath,
		Progress:   &Progress{Status: STATUS_IN_QUEUE},
	}, nil
}

// cleanName keeps user supplied names from escaping their folder.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

func (tgz *TarGzArchive) folderPath(folderId *string) string {
	names := []string{}
	for _, folder := range tgz.source.Breadcrumbs(folderId) {
		names = append(names, cleanName(folder.Name))
	}
	return path.Join(names...)
}

// Plan lists the folders and files to archive. Files sharing a name in one
// folder get their id appended.
func (tgz *TarGzArchive) Plan(ctx context.Context) error {
	tgz.dirs = []dirEntry{}
	for _, folder := range tgz.source.Folders() {
		tgz.dirs = append(tgz.dirs, dirEntry{path: tgz.folderPath(&folder.Id), createdAt: folder.CreatedAt})
	}
	slices.SortFunc(tgz.dirs, func(a, b dirEntry) int { return cmp.Compare(a.path, b.path) })

	used := map[string]bool{}
	tgz.entries = []Entry{}
	for _, record := range tgz.source.Files() {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := cleanName(record.Name)
		entryPath := path.Join(tgz.folderPath(record.ParentId), name)
		if used[entryPath] {
			ext := path.Ext(name)
			entryPath = path.Join(tgz.folderPath(record.ParentId), fmt.Sprintf("%s-%s%s", strings.TrimSuffix(name, ext), record.Id, ext))
		}
		used[entryPath] = true
		tgz.entries = append(tgz.entries, Entry{Path: entryPath, Record: record})
	}
	slices.SortFunc(tgz.entries, func(a, b Entry) int { return cmp.Compare(a.Path, b.Path) })

	tgz.Progress.Done = 0
	tgz.Progress.Total = uint64(len(tgz.entries))
	tgz.Progress.Status = STATUS_PLANNED
	L.Debug(fmt.Sprintf("archive: planned %d files in %d folders", len(tgz.entries), len(tgz.dirs)))
	return nil
}

func (tgz *TarGzArchive) Entries() []Entry {
	return slices.Clone(tgz.entries)
}

// Start writes the archive to a temporary file next to OutputPath and moves
// it in place once complete. Files whose content is missing are skipped and
// reported; any other read failure aborts the archive.
func (tgz *TarGzArchive) Start(ctx context.Context) (*Summary, error) {
	if tgz.Progress.Status != STATUS_PLANNED {
		if err := tgz.Plan(ctx); err != nil {
			return nil, err
		}
	}
	tgz.Progress.Status = STATUS_RUNNING
	partPath := tgz.OutputPath + ".part"
	summary, err := tgz.write(ctx, partPath)
	if err != nil {
		os.Remove(partPath)
		tgz.Progress.Status = STATUS_ABORTED
		return nil, err
	}
	err = os.Rename(partPath, tgz.OutputPath)
	if err != nil {
		os.Remove(partPath)
		tgz.Progress.Status = STATUS_ABORTED
		return nil, err
	}
	info, err := file_io.GetFileInfo(tgz.OutputPath)
	if err == nil {
		summary.ArchivedSize = info.Size
	}
	tgz.Progress.Status = STATUS_COMPLETED
	return summary, nil
}

func (tgz *TarGzArchive) write(ctx context.Context, partPath string) (*Summary, error) {
	tarFile, err := os.OpenFile(partPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	defer tarFile.Close()
	gzipWriter := gzip.NewWriter(tarFile)
	tarGzWriter := tar.NewWriter(gzipWriter)

	summary := &Summary{Skipped: []files.UploadFailure{}}
	for _, dir := range tgz.dirs {
		err := tarGzWriter.WriteHeader(&tar.Header{
			Name:     dir.path + "/",
			Typeflag: tar.TypeDir,
			Mode:     0755,
			ModTime:  dir.createdAt,
		})
		if err != nil {
			return nil, err
		}
		summary.Folders++
	}

	for _, entry := range tgz.entries {
		if err := ctx.Err(); err != nil {
			L.Debug("archive: aborted")
			return nil, err
		}
		data, err := tgz.source.Retrieve(ctx, entry.Record.Id)
		if errors.Is(err, files.ErrDataMissing) || errors.Is(err, files.ErrFileNotFound) {
			L.Warn(fmt.Sprintf("archive: skipping %s: %v", entry.Path, err))
			summary.Skipped = append(summary.Skipped, files.UploadFailure{Name: entry.Path, Err: err})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("archive: could not read %s: %w", entry.Path, err)
		}
		err = tarGzWriter.WriteHeader(&tar.Header{
			Name:     entry.Path,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(data)),
			ModTime:  entry.Record.UploadedAt,
		})
		if err != nil {
			return nil, err
		}
		_, err = tarGzWriter.Write(data)
		if err != nil {
			return nil, err
		}
		summary.Written++
		summary.SizeInBytes += uint64(len(data))
		tgz.Progress.Done++
		if tgz.OnProgress != nil {
			tgz.OnProgress(*tgz.Progress, entry.Path)
		}
	}

	if err := tarGzWriter.Close(); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return summary, tarFile.Close()
}

func IsValidTarGz(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	gr, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("not a valid gzip stream: %w", err)
	}
	defer gr.Close()
	tr := tar.NewReader(gr)
	for {
		_, err = tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
