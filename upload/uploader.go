package upload

import (
	"context"
	"fmt"
	"hourbox/file_io"
	"hourbox/files"
	L "hourbox/logger"
	"path/filepath"
)

// Target is the part of the file manager the uploader feeds.
type Target interface {
	UploadFrom(ctx context.Context, source files.UploadSource, folderId *string) (*files.BatchResult, error)
}

// Uploader turns local paths into one upload batch. Files are read one at a
// time while the batch runs. Oversized or unreadable files are reported as
// failures before their content is read.
type Uploader struct {
	fileIO        file_io.FileIO
	target        Target
	maxUploadSize int64
	OnProgress    func(path string, read int64, total int64)
}

func NewUploader(fileIO file_io.FileIO, target Target, maxUploadSize int64) *Uploader {
	return &Uploader{fileIO: fileIO, target: target, maxUploadSize: maxUploadSize}
}

// Plan expands directories into the list of files that would be uploaded.
// Paths that cannot be listed are returned as failures.
func (u *Uploader) Plan(ctx context.Context, paths []string) ([]string, []files.UploadFailure) {
	planned := []string{}
	failed := []files.UploadFailure{}
	for _, path := range paths {
		found, err := u.fileIO.ListFiles(ctx, path)
		if err != nil {
			L.Warn(fmt.Sprintf("skipping %s: %v", path, err))
			failed = append(failed, files.UploadFailure{Name: filepath.Base(path), Err: fmt.Errorf("could not list %s: %w", path, err)})
			continue
		}
		planned = append(planned, found...)
	}
	return planned, failed
}

// Start uploads every planned file into folderId as a single batch. The only
// errors returned are cancellation and failures of the batch as a whole.
func (u *Uploader) Start(ctx context.Context, paths []string, folderId *string) (*files.BatchResult, error) {
	planned, rejected := u.Plan(ctx, paths)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &files.BatchResult{Uploaded: []files.FileRecord{}, Failed: []files.UploadFailure{}}
	if len(planned) > 0 {
		var err error
		result, err = u.target.UploadFrom(ctx, u.source(ctx, planned), folderId)
		if err != nil {
			return result, err
		}
	}
	result.Failed = append(rejected, result.Failed...)
	return result, nil
}

func (u *Uploader) source(ctx context.Context, planned []string) files.UploadSource {
	return func(yield func(files.UploadItem, error) bool) {
		for _, path := range planned {
			if ctx.Err() != nil {
				return
			}
			item, err := u.read(ctx, path)
			if err != nil {
				item = &files.UploadItem{Name: filepath.Base(path)}
			}
			if !yield(*item, err) {
				return
			}
		}
	}
}

func (u *Uploader) read(ctx context.Context, path string) (*files.UploadItem, error) {
	info, err := u.fileIO.GetFileInfo(path)
	if err != nil {
		return nil, err
	}
	if u.maxUploadSize > 0 && info.Size > uint64(u.maxUploadSize) {
		return nil, fmt.Errorf("%w: %s is larger than %s", files.ErrFileTooLarge,
			L.HumanReadableBytes(info.Size, 1), L.HumanReadableBytes(uint64(u.maxUploadSize), 0))
	}
	data, err := u.fileIO.ReadFile(ctx, path, func(read int64, total int64) {
		if u.OnProgress != nil {
			u.OnProgress(path, read, total)
		}
	})
	if err != nil {
		return nil, err
	}
	return &files.UploadItem{Name: filepath.Base(path), Data: data}, nil
}
