package files

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrBlobStoreUnavailable = errors.New("file storage is unavailable, restart hourbox and retry")
	ErrFileTooLarge         = errors.New("file exceeds the upload limit")
	ErrFileNotFound         = errors.New("file not found")
	// ErrDataMissing means the record exists but its content does not,
	// usually after an interrupted upload. Delete and re-upload the file.
	ErrDataMissing        = errors.New("file content is missing")
	ErrFolderNotFound     = errors.New("folder not found")
	ErrEmptyFolderName    = errors.New("folder name cannot be empty")
	ErrInvalidFileName    = errors.New("file name cannot be empty")
	ErrSelfMove           = errors.New("a folder cannot be moved into itself")
	ErrMoveIntoDescendant = errors.New("a folder cannot be moved into one of its subfolders")
	ErrNotInView          = errors.New("item is not in the current folder")
	ErrPersist            = errors.New("could not persist file metadata locally")
)

const (
	KEY_FILES   = "files"
	KEY_FOLDERS = "folders"
)

type FileKind string

const (
	FILE_KIND_BLOB          FileKind = "BLOB"
	FILE_KIND_LEGACY_INLINE FileKind = "LEGACY_INLINE"
)

type ItemKind string

const (
	ITEM_KIND_FILE   ItemKind = "file"
	ITEM_KIND_FOLDER ItemKind = "folder"
)

func ParseItemKind(kindStr string) (ItemKind, error) {
	switch ItemKind(strings.ToLower(kindStr)) {
	case ITEM_KIND_FILE:
		return ITEM_KIND_FILE, nil
	case ITEM_KIND_FOLDER:
		return ITEM_KIND_FOLDER, nil
	default:
		return "", errors.New("item kind must be file or folder")
	}
}

// FileRecord describes an uploaded file. Content lives in the blob store
// under the same id, except for legacy records that still carry it inline.
type FileRecord struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Size       string    `json:"size"`
	SizeBytes  int64     `json:"sizeBytes,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
	Type       string    `json:"type"`
	ParentId   *string   `json:"parentId"`
	InlineData *string   `json:"data,omitempty"`
}

func (f FileRecord) Kind() FileKind {
	if f.InlineData != nil && *f.InlineData != "" {
		return FILE_KIND_LEGACY_INLINE
	}
	return FILE_KIND_BLOB
}

// Extension is the lower case extension without the dot.
func (f FileRecord) Extension() string {
	i := strings.LastIndex(f.Name, ".")
	if i < 0 || i == len(f.Name)-1 {
		return ""
	}
	return strings.ToLower(f.Name[i+1:])
}

type Folder struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	ParentId  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Listing struct {
	Folders []Folder
	Files   []FileRecord
}

type UploadItem struct {
	Name string
	// Type is the declared MIME type, may be empty
	Type string
	Data []byte
}

type UploadFailure struct {
	Name string
	Err  error
}

type BatchResult struct {
	Uploaded []FileRecord
	Failed   []UploadFailure
}

type DeleteSummary struct {
	Folders       int
	Files         int
	BlobFailures  int
	RemovedFolder Folder
}

type MoveFailure struct {
	Id  string
	Err error
}

type MoveResult struct {
	Moved  int
	Failed []MoveFailure
}

type Usage struct {
	Files     int
	Folders   int
	BlobCount int64
	BlobBytes int64
}

func sameParent(a *string, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptr(s string) *string {
	return &s
}
