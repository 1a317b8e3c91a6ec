package files

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hourbox/database"
	"hourbox/database/repository"
	L "hourbox/logger"
	"hourbox/metrics"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DEFAULT_MAX_UPLOAD_SIZE int64 = 200 * 1024 * 1024

// Manager owns file metadata, the folder tree and the selection, and is the
// only component that touches the blob store.
type Manager struct {
	mu            sync.Mutex
	blobs         repository.BlobRepository
	metadata      repository.MetadataRepository
	maxUploadSize int64
	blobErr       error
	blobReady     bool
	files         []FileRecord
	folders       []Folder
	currentFolder *string
	selection     map[string]ItemKind
	migrating     map[string]bool
	migrations    sync.WaitGroup
	strategies    []retrievalStrategy
	now           func() time.Time
	newId         func() string
}

type Option func(*Manager)

func WithMaxUploadSize(bytes int64) Option {
	return func(m *Manager) { m.maxUploadSize = bytes }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIdGenerator(newId func() string) Option {
	return func(m *Manager) { m.newId = newId }
}

func NewManager(blobs repository.BlobRepository, metadata repository.MetadataRepository, opts ...Option) *Manager {
	m := &Manager{
		blobs:         blobs,
		metadata:      metadata,
		maxUploadSize: DEFAULT_MAX_UPLOAD_SIZE,
		files:         []FileRecord{},
		folders:       []Folder{},
		selection:     map[string]ItemKind{},
		migrating:     map[string]bool{},
		now:           time.Now,
		newId:         uuid.NewString,
	}
	m.strategies = []retrievalStrategy{
		{name: "inline", retrieve: m.retrieveInline},
		{name: "blob", retrieve: m.retrieveBlob},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InitBlobStore must run before uploads and retrievals. A failure is
// remembered and makes those operations fail with ErrBlobStoreUnavailable.
func (m *Manager) InitBlobStore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.blobs.Open(ctx)
	if err != nil {
		m.blobErr = fmt.Errorf("%w: %w", ErrBlobStoreUnavailable, err)
		m.blobReady = false
		L.Error(fmt.Sprintf("blob store failed to open: %v", err))
		return m.blobErr
	}
	m.blobErr = nil
	m.blobReady = true
	return nil
}

func (m *Manager) blobStoreErr() error {
	if m.blobErr != nil {
		return m.blobErr
	}
	if !m.blobReady {
		return fmt.Errorf("%w: blob store was not initialized", ErrBlobStoreUnavailable)
	}
	return nil
}

type LoadAllResult struct {
	Files      int
	Folders    int
	FilesErr   error
	FoldersErr error
}

// LoadAll reads both collections from the metadata store. A collection that
// cannot be read or parsed is reset to empty without touching the other.
func (m *Manager) LoadAll(ctx context.Context) LoadAllResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := LoadAllResult{}

	files, err := loadCollection[FileRecord](ctx, m.metadata, KEY_FILES)
	if err != nil {
		L.Warn(fmt.Sprintf("resetting file list: %v", err))
		result.FilesErr = err
	}
	folders, err := loadCollection[Folder](ctx, m.metadata, KEY_FOLDERS)
	if err != nil {
		L.Warn(fmt.Sprintf("resetting folder list: %v", err))
		result.FoldersErr = err
	}
	m.files = files
	m.folders = folders
	m.currentFolder = nil
	clear(m.selection)
	result.Files = len(files)
	result.Folders = len(folders)
	L.Debug(fmt.Sprintf("loaded %d files and %d folders", result.Files, result.Folders))
	return result
}

func loadCollection[T any](ctx context.Context, metadata repository.MetadataRepository, key string) ([]T, error) {
	value, err := metadata.Get(ctx, key)
	if err != nil {
		if errors.Is(err, database.ErrDoesNotExist) {
			return []T{}, nil
		}
		return []T{}, err
	}
	var items []T
	err = json.Unmarshal([]byte(value), &items)
	if err != nil {
		return []T{}, fmt.Errorf("malformed %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (m *Manager) persistFiles(ctx context.Context) error {
	return m.persist(ctx, KEY_FILES, m.files)
}

func (m *Manager) persistFolders(ctx context.Context) error {
	return m.persist(ctx, KEY_FOLDERS, m.folders)
}

func (m *Manager) persist(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	err = m.metadata.Set(ctx, key, string(data))
	if err != nil {
		metrics.RecordPersistFailure(metrics.STORE_METADATA)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Navigate changes the current folder, nil being the root, and clears the selection.
func (m *Manager) Navigate(folderId *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if folderId != nil && m.folderIndex(*folderId) < 0 {
		return ErrFolderNotFound
	}
	if folderId != nil {
		folderId = ptr(*folderId)
	}
	m.currentFolder = folderId
	clear(m.selection)
	return nil
}

func (m *Manager) CurrentFolder() *string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentFolder == nil {
		return nil
	}
	return ptr(*m.currentFolder)
}

// List returns the direct children of folderId, folders first, each sorted by name.
func (m *Manager) List(folderId *string) Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(folderId)
}

func (m *Manager) list(folderId *string) Listing {
	listing := Listing{Folders: []Folder{}, Files: []FileRecord{}}
	for _, f := range m.folders {
		if sameParent(f.ParentId, folderId) {
			listing.Folders = append(listing.Folders, f)
		}
	}
	for _, f := range m.files {
		if sameParent(f.ParentId, folderId) {
			listing.Files = append(listing.Files, f)
		}
	}
	slices.SortFunc(listing.Folders, func(a, b Folder) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	slices.SortFunc(listing.Files, func(a, b FileRecord) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return listing
}

// Breadcrumbs returns the chain of folders from the root down to folderId.
func (m *Manager) Breadcrumbs(folderId *string) []Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	crumbs := []Folder{}
	seen := map[string]bool{}
	for id := folderId; id != nil && !seen[*id]; {
		seen[*id] = true
		i := m.folderIndex(*id)
		if i < 0 {
			break
		}
		crumbs = append(crumbs, m.folders[i])
		id = m.folders[i].ParentId
	}
	slices.Reverse(crumbs)
	return crumbs
}

func (m *Manager) File(id string) (*FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.fileIndex(id)
	if i < 0 {
		return nil, ErrFileNotFound
	}
	f := m.files[i]
	return &f, nil
}

func (m *Manager) Folder(id string) (*Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.folderIndex(id)
	if i < 0 {
		return nil, ErrFolderNotFound
	}
	f := m.folders[i]
	return &f, nil
}

func (m *Manager) Files() []FileRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.files)
}

func (m *Manager) Folders() []Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.folders)
}

func (m *Manager) Usage(ctx context.Context) (*Usage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	usage := &Usage{Files: len(m.files), Folders: len(m.folders)}
	if err := m.blobStoreErr(); err != nil {
		return usage, err
	}
	blobUsage, err := m.blobs.Usage(ctx)
	if err != nil {
		return usage, err
	}
	usage.BlobCount = blobUsage.Count
	usage.BlobBytes = blobUsage.SizeBytes
	return usage, nil
}

func (m *Manager) fileIndex(id string) int {
	return slices.IndexFunc(m.files, func(f FileRecord) bool { return f.Id == id })
}

func (m *Manager) folderIndex(id string) int {
	return slices.IndexFunc(m.folders, func(f Folder) bool { return f.Id == id })
}
