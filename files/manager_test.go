package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hourbox/checksum"
	"hourbox/database"
	"hourbox/database/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type testStores struct {
	db       *database.DB
	blobs    repository.BlobRepository
	metadata repository.MetadataRepository
}

func setupStores(t *testing.T) testStores {
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Init(context.Background()))
	t.Cleanup(func() { db.Close(context.Background()) })
	return testStores{
		db:       db,
		blobs:    repository.NewBlobRepository(db),
		metadata: repository.NewMetadataRepository(db, 0),
	}
}

func sequentialIds() Option {
	n := 0
	return WithIdGenerator(func() string {
		n++
		return fmt.Sprintf("id%d", n)
	})
}

func newTestManager(t *testing.T, stores testStores, opts ...Option) *Manager {
	opts = append([]Option{sequentialIds(), WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	})}, opts...)
	m := NewManager(stores.blobs, stores.metadata, opts...)
	require.NoError(t, m.InitBlobStore(context.Background()))
	m.LoadAll(context.Background())
	return m
}

// brokenBlobs wraps a real repository and fails the operations named in fail.
type brokenBlobs struct {
	repository.BlobRepository
	fail map[string]bool
}

var errBroken = errors.New("disk on fire")

func (b *brokenBlobs) Open(ctx context.Context) error {
	if b.fail["open"] {
		return errBroken
	}
	return b.BlobRepository.Open(ctx)
}

func (b *brokenBlobs) Put(ctx context.Context, key string, data []byte) error {
	if b.fail["put"] || b.fail["put:"+key] {
		return errBroken
	}
	return b.BlobRepository.Put(ctx, key, data)
}

func (b *brokenBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	if b.fail["get"] {
		return nil, errBroken
	}
	return b.BlobRepository.Get(ctx, key)
}

func (b *brokenBlobs) Delete(ctx context.Context, key string) error {
	if b.fail["delete"] {
		return errBroken
	}
	return b.BlobRepository.Delete(ctx, key)
}

func TestInitBlobStore(t *testing.T) {
	ctx := context.Background()

	t.Run("FailureMakesUploadFailFast", func(t *testing.T) {
		stores := setupStores(t)
		m := NewManager(&brokenBlobs{BlobRepository: stores.blobs, fail: map[string]bool{"open": true}}, stores.metadata)
		err := m.InitBlobStore(ctx)
		assert.ErrorIs(t, err, ErrBlobStoreUnavailable)

		_, err = m.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}}, nil)
		assert.ErrorIs(t, err, ErrBlobStoreUnavailable)
	})

	t.Run("NotInitialized", func(t *testing.T) {
		stores := setupStores(t)
		m := NewManager(stores.blobs, stores.metadata)
		_, err := m.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}}, nil)
		assert.ErrorIs(t, err, ErrBlobStoreUnavailable)
	})

	t.Run("RetrieveFailsFastForBlobRecords", func(t *testing.T) {
		stores := setupStores(t)
		good := newTestManager(t, stores)
		res, err := good.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}}, nil)
		require.NoError(t, err)

		m := NewManager(&brokenBlobs{BlobRepository: stores.blobs, fail: map[string]bool{"open": true}}, stores.metadata)
		m.InitBlobStore(ctx)
		m.LoadAll(ctx)
		_, err = m.Retrieve(ctx, res.Uploaded[0].Id)
		assert.ErrorIs(t, err, ErrBlobStoreUnavailable)
	})
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("CorruptFilesDoNotAffectFolders", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		_, err := m.CreateFolder(ctx, "docs", nil)
		require.NoError(t, err)
		require.NoError(t, stores.metadata.Set(ctx, KEY_FILES, "{broken"))

		result := m.LoadAll(ctx)
		assert.Error(t, result.FilesErr)
		assert.NoError(t, result.FoldersErr)
		assert.Empty(t, m.Files())
		assert.Len(t, m.Folders(), 1)
	})

	t.Run("ResetsCurrentFolder", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		f, err := m.CreateFolder(ctx, "docs", nil)
		require.NoError(t, err)
		require.NoError(t, m.Navigate(&f.Id))
		m.LoadAll(ctx)
		assert.Nil(t, m.CurrentFolder())
	})
}

func TestUploadRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("FiveBytesRoundTrip", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		res, err := m.Upload(ctx, []UploadItem{{Name: "hello.txt", Data: []byte("hello")}}, nil)
		require.NoError(t, err)
		require.Len(t, res.Uploaded, 1)
		record := res.Uploaded[0]
		assert.Equal(t, "5 B", record.Size)
		assert.Equal(t, "text/plain", record.Type)
		assert.Equal(t, FILE_KIND_BLOB, record.Kind())
		assert.Nil(t, record.InlineData)

		data, err := m.Retrieve(ctx, record.Id)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)

		require.NoError(t, m.DeleteFile(ctx, record.Id))
		_, err = m.Retrieve(ctx, record.Id)
		assert.ErrorIs(t, err, ErrFileNotFound)
		_, err = stores.blobs.Get(ctx, record.Id)
		assert.ErrorIs(t, err, database.ErrDoesNotExist)
	})

	t.Run("BatchToleratesOversizedFile", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores, WithMaxUploadSize(4))
		res, err := m.Upload(ctx, []UploadItem{
			{Name: "ok.bin", Data: []byte("1234")},
			{Name: "big.bin", Data: []byte("12345")},
			{Name: "  ", Data: []byte("1")},
			{Name: "also-ok.bin", Data: []byte("1")},
		}, nil)
		require.NoError(t, err)
		assert.Len(t, res.Uploaded, 2)
		require.Len(t, res.Failed, 2)
		assert.Equal(t, "big.bin", res.Failed[0].Name)
		assert.ErrorIs(t, res.Failed[0].Err, ErrFileTooLarge)
		assert.ErrorIs(t, res.Failed[1].Err, ErrInvalidFileName)

		reloaded := newTestManager(t, stores)
		assert.Len(t, reloaded.Files(), 2)
	})

	t.Run("BlobWriteFailureAddsNoMetadata", func(t *testing.T) {
		stores := setupStores(t)
		m := NewManager(&brokenBlobs{BlobRepository: stores.blobs, fail: map[string]bool{"put:id1": true}}, stores.metadata, sequentialIds())
		require.NoError(t, m.InitBlobStore(ctx))
		res, err := m.Upload(ctx, []UploadItem{{Name: "a", Data: []byte("a")}, {Name: "b", Data: []byte("b")}}, nil)
		require.NoError(t, err)
		require.Len(t, res.Uploaded, 1)
		assert.Equal(t, "b", res.Uploaded[0].Name)
		assert.ErrorIs(t, res.Failed[0].Err, errBroken)
		assert.Len(t, m.Files(), 1)
	})

	t.Run("UnknownTargetFolder", func(t *testing.T) {
		m := newTestManager(t, setupStores(t))
		_, err := m.Upload(ctx, []UploadItem{{Name: "a", Data: []byte("a")}}, ptr("nope"))
		assert.ErrorIs(t, err, ErrFolderNotFound)
	})

	t.Run("DataMissing", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		res, err := m.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}}, nil)
		require.NoError(t, err)
		require.NoError(t, stores.blobs.Delete(ctx, res.Uploaded[0].Id))

		_, err = m.Retrieve(ctx, res.Uploaded[0].Id)
		assert.ErrorIs(t, err, ErrDataMissing)
		assert.NotErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("BlobReadError", func(t *testing.T) {
		stores := setupStores(t)
		broken := &brokenBlobs{BlobRepository: stores.blobs, fail: map[string]bool{}}
		m := NewManager(broken, stores.metadata)
		require.NoError(t, m.InitBlobStore(ctx))
		res, err := m.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}}, nil)
		require.NoError(t, err)

		broken.fail["get"] = true
		_, err = m.Retrieve(ctx, res.Uploaded[0].Id)
		assert.ErrorIs(t, err, ErrDataMissing)
		assert.ErrorIs(t, err, errBroken)
	})
}

func TestUploadFrom(t *testing.T) {
	ctx := context.Background()

	t.Run("ItemsAreStoredAsTheyArePulled", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		var stored []int64
		source := func(yield func(UploadItem, error) bool) {
			for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
				if i > 0 {
					usage, err := stores.blobs.Usage(ctx)
					require.NoError(t, err)
					stored = append(stored, usage.Count)
				}
				if !yield(UploadItem{Name: name, Data: []byte(name)}, nil) {
					return
				}
			}
		}
		res, err := m.UploadFrom(ctx, source, nil)
		require.NoError(t, err)
		assert.Len(t, res.Uploaded, 3)
		assert.Equal(t, []int64{1, 2}, stored)
	})

	t.Run("SourceErrorIsAFailedItem", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		source := func(yield func(UploadItem, error) bool) {
			if !yield(UploadItem{Name: "gone.txt"}, errBroken) {
				return
			}
			yield(UploadItem{Name: "ok.txt", Data: []byte("ok")}, nil)
		}
		res, err := m.UploadFrom(ctx, source, nil)
		require.NoError(t, err)
		require.Len(t, res.Failed, 1)
		assert.Equal(t, "gone.txt", res.Failed[0].Name)
		assert.ErrorIs(t, res.Failed[0].Err, errBroken)
		require.Len(t, res.Uploaded, 1)
		assert.Equal(t, "ok.txt", res.Uploaded[0].Name)
	})

	t.Run("CancelKeepsWhatWasStored", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		cancelCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		source := func(yield func(UploadItem, error) bool) {
			if !yield(UploadItem{Name: "first.txt", Data: []byte("1")}, nil) {
				return
			}
			cancel()
			yield(UploadItem{Name: "second.txt", Data: []byte("2")}, nil)
		}
		res, err := m.UploadFrom(cancelCtx, source, nil)
		assert.ErrorIs(t, err, context.Canceled)
		require.Len(t, res.Uploaded, 1)

		reloaded := newTestManager(t, stores)
		require.Len(t, reloaded.Files(), 1)
		assert.Equal(t, "first.txt", reloaded.Files()[0].Name)
	})
}

func TestDetectType(t *testing.T) {
	assert.Equal(t, "image/x-custom", detectType("a.png", "image/x-custom", nil))
	assert.Equal(t, "application/pdf", detectType("a.pdf", "", nil))
	assert.Equal(t, "image/png", detectType("noext", DEFAULT_MIME_TYPE, []byte("\x89PNG\r\n\x1a\n0000")))
	assert.Equal(t, DEFAULT_MIME_TYPE, detectType("noext", "", nil))
}

func TestLegacyMigration(t *testing.T) {
	ctx := context.Background()
	payload := []byte("legacy bytes")

	seed := func(t *testing.T, stores testStores, inline string) {
		records := fmt.Sprintf(`[{"id":"old1","name":"old.txt","size":"12 B","uploadedAt":"2023-01-01T00:00:00Z","type":"text/plain","parentId":null,"data":%q}]`, inline)
		require.NoError(t, stores.metadata.Set(ctx, KEY_FILES, records))
	}

	t.Run("MovesInlineDataIntoBlobStore", func(t *testing.T) {
		stores := setupStores(t)
		seed(t, stores, checksum.Base64EncodeStr(payload))
		m := newTestManager(t, stores)
		record, err := m.File("old1")
		require.NoError(t, err)
		assert.Equal(t, FILE_KIND_LEGACY_INLINE, record.Kind())

		data, err := m.Retrieve(ctx, "old1")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		m.WaitForMigrations()

		blob, err := stores.blobs.Get(ctx, "old1")
		require.NoError(t, err)
		assert.Equal(t, payload, blob)

		reloaded := newTestManager(t, stores)
		record, err = reloaded.File("old1")
		require.NoError(t, err)
		assert.Nil(t, record.InlineData)
		assert.Equal(t, int64(len(payload)), record.SizeBytes)
		data, err = reloaded.Retrieve(ctx, "old1")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("DataURL", func(t *testing.T) {
		stores := setupStores(t)
		seed(t, stores, "data:text/plain;base64,"+checksum.Base64EncodeStr(payload))
		m := newTestManager(t, stores)
		data, err := m.Retrieve(ctx, "old1")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		m.WaitForMigrations()
	})

	t.Run("MigrationFailureDoesNotAffectRetrieval", func(t *testing.T) {
		stores := setupStores(t)
		seed(t, stores, checksum.Base64EncodeStr(payload))
		m := NewManager(&brokenBlobs{BlobRepository: stores.blobs, fail: map[string]bool{"put": true}}, stores.metadata)
		require.NoError(t, m.InitBlobStore(ctx))
		m.LoadAll(ctx)

		data, err := m.Retrieve(ctx, "old1")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		m.WaitForMigrations()

		record, err := m.File("old1")
		require.NoError(t, err)
		assert.Equal(t, FILE_KIND_LEGACY_INLINE, record.Kind())

		// next retrieval schedules another attempt
		_, err = m.Retrieve(ctx, "old1")
		assert.NoError(t, err)
		m.WaitForMigrations()
	})

	t.Run("CorruptInlineFallsBackToBlob", func(t *testing.T) {
		stores := setupStores(t)
		seed(t, stores, "%%%not base64")
		require.NoError(t, stores.blobs.Put(ctx, "old1", payload))
		m := newTestManager(t, stores)
		data, err := m.Retrieve(ctx, "old1")
		require.NoError(t, err)
		assert.True(t, bytes.Equal(payload, data))
	})
}

func TestFolders(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateRejectsBlankNames", func(t *testing.T) {
		m := newTestManager(t, setupStores(t))
		_, err := m.CreateFolder(ctx, "   ", nil)
		assert.ErrorIs(t, err, ErrEmptyFolderName)
		assert.Empty(t, m.Folders())
	})

	t.Run("CreateRequiresExistingParent", func(t *testing.T) {
		m := newTestManager(t, setupStores(t))
		_, err := m.CreateFolder(ctx, "x", ptr("nope"))
		assert.ErrorIs(t, err, ErrFolderNotFound)
	})

	t.Run("Rename", func(t *testing.T) {
		m := newTestManager(t, setupStores(t))
		f, err := m.CreateFolder(ctx, "old", nil)
		require.NoError(t, err)
		require.NoError(t, m.RenameFolder(ctx, f.Id, " new "))
		got, err := m.Folder(f.Id)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Name)
		assert.ErrorIs(t, m.RenameFolder(ctx, f.Id, ""), ErrEmptyFolderName)
	})

	t.Run("ListAndBreadcrumbs", func(t *testing.T) {
		m := newTestManager(t, setupStores(t))
		a, _ := m.CreateFolder(ctx, "b-folder", nil)
		_, _ = m.CreateFolder(ctx, "a-folder", nil)
		child, _ := m.CreateFolder(ctx, "child", &a.Id)
		_, err := m.Upload(ctx, []UploadItem{{Name: "z.txt", Data: []byte("z")}, {Name: "y.txt", Data: []byte("y")}}, nil)
		require.NoError(t, err)

		root := m.List(nil)
		require.Len(t, root.Folders, 2)
		assert.Equal(t, "a-folder", root.Folders[0].Name)
		require.Len(t, root.Files, 2)
		assert.Equal(t, "y.txt", root.Files[0].Name)

		crumbs := m.Breadcrumbs(&child.Id)
		require.Len(t, crumbs, 2)
		assert.Equal(t, "b-folder", crumbs[0].Name)
		assert.Equal(t, "child", crumbs[1].Name)
	})
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()
	stores := setupStores(t)
	m := newTestManager(t, stores)

	// f1 { a.txt, f2 { b.txt, f3 { c.txt } }, f4 {} }, sibling { d.txt }, root.txt
	f1, _ := m.CreateFolder(ctx, "f1", nil)
	f2, _ := m.CreateFolder(ctx, "f2", &f1.Id)
	f3, _ := m.CreateFolder(ctx, "f3", &f2.Id)
	_, _ = m.CreateFolder(ctx, "f4", &f1.Id)
	sibling, _ := m.CreateFolder(ctx, "sibling", nil)
	upload := func(name string, folder *string) string {
		res, err := m.Upload(ctx, []UploadItem{{Name: name, Data: []byte(name)}}, folder)
		require.NoError(t, err)
		return res.Uploaded[0].Id
	}
	upload("a.txt", &f1.Id)
	upload("b.txt", &f2.Id)
	upload("c.txt", &f3.Id)
	keepD := upload("d.txt", &sibling.Id)
	keepRoot := upload("root.txt", nil)
	require.NoError(t, m.Navigate(&f3.Id))

	summary, err := m.DeleteFolder(ctx, f1.Id)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Folders)
	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 0, summary.BlobFailures)

	assert.Len(t, m.Folders(), 1)
	ids := []string{}
	for _, f := range m.Files() {
		ids = append(ids, f.Id)
	}
	assert.ElementsMatch(t, []string{keepD, keepRoot}, ids)
	assert.Nil(t, m.CurrentFolder())

	usage, err := m.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.BlobCount)

	reloaded := newTestManager(t, stores)
	assert.Len(t, reloaded.Folders(), 1)
	assert.Len(t, reloaded.Files(), 2)

	_, err = m.DeleteFolder(ctx, f1.Id)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestDeleteFileBlobFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	stores := setupStores(t)
	broken := &brokenBlobs{BlobRepository: stores.blobs, fail: map[string]bool{}}
	m := NewManager(broken, stores.metadata)
	require.NoError(t, m.InitBlobStore(ctx))
	res, err := m.Upload(ctx, []UploadItem{{Name: "a", Data: []byte("a")}}, nil)
	require.NoError(t, err)

	broken.fail["delete"] = true
	require.NoError(t, m.DeleteFile(ctx, res.Uploaded[0].Id))
	assert.Empty(t, m.Files())
	assert.ErrorIs(t, m.DeleteFile(ctx, res.Uploaded[0].Id), ErrFileNotFound)
}

func TestMoveItem(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Manager, *Folder, *Folder, *Folder) {
		m := newTestManager(t, setupStores(t))
		f1, _ := m.CreateFolder(ctx, "f1", nil)
		f2, _ := m.CreateFolder(ctx, "f2", &f1.Id)
		f3, _ := m.CreateFolder(ctx, "f3", &f2.Id)
		return m, f1, f2, f3
	}

	t.Run("SelfMoveRejected", func(t *testing.T) {
		m, _, f2, _ := setup(t)
		err := m.MoveItem(ctx, f2.Id, ITEM_KIND_FOLDER, &f2.Id)
		assert.ErrorIs(t, err, ErrSelfMove)
	})

	t.Run("MoveIntoDescendantRejected", func(t *testing.T) {
		m, f1, f2, f3 := setup(t)
		err := m.MoveItem(ctx, f2.Id, ITEM_KIND_FOLDER, &f3.Id)
		assert.ErrorIs(t, err, ErrMoveIntoDescendant)
		got, _ := m.Folder(f2.Id)
		assert.Equal(t, f1.Id, *got.ParentId)
	})

	t.Run("MoveFolderToRoot", func(t *testing.T) {
		m, _, _, f3 := setup(t)
		require.NoError(t, m.MoveItem(ctx, f3.Id, ITEM_KIND_FOLDER, nil))
		got, _ := m.Folder(f3.Id)
		assert.Nil(t, got.ParentId)
	})

	t.Run("MoveFileAndPersist", func(t *testing.T) {
		stores := setupStores(t)
		m := newTestManager(t, stores)
		f, _ := m.CreateFolder(ctx, "docs", nil)
		res, err := m.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}}, nil)
		require.NoError(t, err)

		require.NoError(t, m.MoveItem(ctx, res.Uploaded[0].Id, ITEM_KIND_FILE, &f.Id))
		reloaded := newTestManager(t, stores)
		got, err := reloaded.File(res.Uploaded[0].Id)
		require.NoError(t, err)
		assert.Equal(t, f.Id, *got.ParentId)
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		m, f1, _, _ := setup(t)
		assert.ErrorIs(t, m.MoveItem(ctx, f1.Id, ITEM_KIND_FOLDER, ptr("nope")), ErrFolderNotFound)
		assert.ErrorIs(t, m.MoveItem(ctx, "nope", ITEM_KIND_FILE, nil), ErrFileNotFound)
	})
}

func TestSelection(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, setupStores(t))
	docs, _ := m.CreateFolder(ctx, "docs", nil)
	inner, _ := m.CreateFolder(ctx, "inner", &docs.Id)
	archive, _ := m.CreateFolder(ctx, "archive", nil)
	res, err := m.Upload(ctx, []UploadItem{{Name: "a.txt", Data: []byte("a")}, {Name: "b.txt", Data: []byte("b")}}, nil)
	require.NoError(t, err)
	a, b := res.Uploaded[0], res.Uploaded[1]

	t.Run("ToggleOnlyInCurrentFolder", func(t *testing.T) {
		selected, err := m.ToggleSelection(a.Id)
		require.NoError(t, err)
		assert.True(t, selected)
		selected, err = m.ToggleSelection(a.Id)
		require.NoError(t, err)
		assert.False(t, selected)

		_, err = m.ToggleSelection(inner.Id)
		assert.ErrorIs(t, err, ErrNotInView)
	})

	t.Run("NavigationClears", func(t *testing.T) {
		assert.Equal(t, 4, m.SelectAll(true))
		assert.Len(t, m.Selected(), 4)
		require.NoError(t, m.Navigate(nil))
		assert.Empty(t, m.Selected())
	})

	t.Run("MoveSelected", func(t *testing.T) {
		_, err := m.ToggleSelection(a.Id)
		require.NoError(t, err)
		_, err = m.ToggleSelection(b.Id)
		require.NoError(t, err)
		_, err = m.ToggleSelection(docs.Id)
		require.NoError(t, err)
		_, err = m.ToggleSelection(archive.Id)
		require.NoError(t, err)

		result, err := m.MoveSelected(ctx, &archive.Id)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Moved)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, archive.Id, result.Failed[0].Id)
		assert.ErrorIs(t, result.Failed[0].Err, ErrSelfMove)
		assert.Empty(t, m.Selected())

		listing := m.List(&archive.Id)
		assert.Len(t, listing.Files, 2)
		assert.Len(t, listing.Folders, 1)
	})

	t.Run("SelectAllFalseClears", func(t *testing.T) {
		m.SelectAll(true)
		assert.Equal(t, 0, m.SelectAll(false))
		assert.Empty(t, m.Selected())
	})
}
