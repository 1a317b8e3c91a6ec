package archive

import (
	"context"
	"hourbox/files"
)

type ArchiveStatus int

const (
	STATUS_IN_QUEUE ArchiveStatus = iota
	STATUS_PLANNED
	STATUS_RUNNING
	STATUS_ABORTED
	STATUS_COMPLETED
)

type Progress struct {
	Done   uint64
	Total  uint64
	Status ArchiveStatus
}

// Source is the file store being archived.
type Source interface {
	Files() []files.FileRecord
	Folders() []files.Folder
	Breadcrumbs(folderId *string) []files.Folder
	Retrieve(ctx context.Context, fileId string) ([]byte, error)
}

// Entry is one file of the archive with its slash separated path.
type Entry struct {
	Path   string
	Record files.FileRecord
}

type Summary struct {
	Written      int
	Folders      int
	SizeInBytes  uint64
	Skipped      []files.UploadFailure
	ArchivedSize uint64
}

func (status ArchiveStatus) String() string {
	switch status {
	case STATUS_IN_QUEUE:
		return "IN_QUEUE"
	case STATUS_PLANNED:
		return "PLANNED"
	case STATUS_RUNNING:
		return "RUNNING"
	case STATUS_ABORTED:
		return "ABORTED"
	case STATUS_COMPLETED:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}
