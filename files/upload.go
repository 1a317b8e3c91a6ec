package files

import (
	"context"
	"fmt"
	L "hourbox/logger"
	"hourbox/metrics"
	"iter"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DEFAULT_MIME_TYPE = "application/octet-stream"

// UploadSource yields batch items one at a time. An item yielded with a
// non-nil error is recorded as failed under its Name and the batch goes on.
type UploadSource = iter.Seq2[UploadItem, error]

// Items adapts an in-memory slice to an UploadSource.
func Items(items []UploadItem) UploadSource {
	return func(yield func(UploadItem, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Upload stores every item under folderId. Items are independent: one
// rejected or failed item does not stop the rest. Metadata is persisted once
// after the whole batch, and a record is only added after its blob is written.
func (m *Manager) Upload(ctx context.Context, items []UploadItem, folderId *string) (*BatchResult, error) {
	return m.UploadFrom(ctx, Items(items), folderId)
}

// UploadFrom is Upload over a lazy source, so only one item's content is held
// at a time. Cancelling ctx stops pulling items; what was already stored is
// still persisted and the context error is returned with the partial result.
func (m *Manager) UploadFrom(ctx context.Context, source UploadSource, folderId *string) (*BatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.blobStoreErr(); err != nil {
		return nil, err
	}
	if folderId != nil {
		if m.folderIndex(*folderId) < 0 {
			return nil, fmt.Errorf("could not upload into %s: %w", *folderId, ErrFolderNotFound)
		}
		folderId = ptr(*folderId)
	}

	result := &BatchResult{Uploaded: []FileRecord{}, Failed: []UploadFailure{}}
	for item, err := range source {
		if ctx.Err() != nil {
			break
		}
		var record *FileRecord
		if err == nil {
			record, err = m.uploadOne(ctx, item, folderId)
			metrics.RecordUpload(err)
		}
		if err != nil {
			L.Warn(fmt.Sprintf("upload %s failed: %v", item.Name, err))
			result.Failed = append(result.Failed, UploadFailure{Name: item.Name, Err: err})
			continue
		}
		m.files = append(m.files, *record)
		result.Uploaded = append(result.Uploaded, *record)
	}

	if len(result.Uploaded) > 0 {
		if err := m.persistFiles(context.WithoutCancel(ctx)); err != nil {
			return result, err
		}
		L.Debug(fmt.Sprintf("uploaded %d of %d files", len(result.Uploaded), len(result.Uploaded)+len(result.Failed)))
	}
	return result, ctx.Err()
}

func (m *Manager) uploadOne(ctx context.Context, item UploadItem, folderId *string) (*FileRecord, error) {
	name := strings.TrimSpace(filepath.Base(item.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrInvalidFileName
	}
	size := int64(len(item.Data))
	if size > m.maxUploadSize {
		return nil, fmt.Errorf("%w: %s is larger than %s", ErrFileTooLarge,
			L.HumanReadableBytes(uint64(size), 1), L.HumanReadableBytes(uint64(m.maxUploadSize), 0))
	}

	id := m.newId()
	err := m.blobs.Put(ctx, id, item.Data)
	if err != nil {
		return nil, fmt.Errorf("could not store content: %w", err)
	}
	return &FileRecord{
		Id:         id,
		Name:       name,
		Size:       L.HumanReadableBytes(uint64(size), 2),
		SizeBytes:  size,
		UploadedAt: m.now().UTC(),
		Type:       detectType(name, item.Type, item.Data),
		ParentId:   folderId,
	}, nil
}

// detectType prefers the declared type, then the extension, then the content.
func detectType(name string, declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != DEFAULT_MIME_TYPE {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return stripParams(byExt)
	}
	if len(data) > 0 {
		return stripParams(mimetype.Detect(data).String())
	}
	return DEFAULT_MIME_TYPE
}

func stripParams(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(base)
}
