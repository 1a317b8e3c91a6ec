package app

import (
	"context"
	"errors"
	"fmt"
	"hourbox/backend"
	"hourbox/backend/httpstore"
	"hourbox/config"
	"hourbox/database"
	"hourbox/database/repository"
	"hourbox/files"
	L "hourbox/logger"
	"hourbox/session"
)

var newDB = database.NewDB

// App holds the stores and managers for one user context. They are built once
// and shared by every command and the tui.
type App struct {
	Config   *config.Config
	DB       *database.DB
	Remote   *httpstore.Store
	Sessions *session.Manager
	Files    *files.Manager
	// Loaded describes where the session list came from
	Loaded session.LoadResult
}

// Open builds the local database, the remote client when enabled and both
// managers, then loads their state. A failing blob store is not fatal: file
// operations report it when they are used.
func Open(ctx context.Context, configurator config.Configurator) (*App, error) {
	c := configurator.Get()
	dataDir, err := c.GetDataDir()
	if err != nil {
		return nil, err
	}
	dbPath, err := database.GetDBFilePath(dataDir)
	if err != nil {
		return nil, err
	}
	db, err := newDB(dbPath)
	if err != nil {
		return nil, err
	}
	err = db.Init(ctx)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}
	a, err := New(ctx, c, db)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}
	return a, nil
}

// New wires the managers on top of an initialized database.
func New(ctx context.Context, c *config.Config, db *database.DB) (*App, error) {
	a := &App{Config: c, DB: db}
	metadata := repository.NewMetadataRepository(db, int64(c.MetadataQuota))

	var remote session.RemoteStore
	if c.Remote != nil && c.Remote.Enabled {
		store, err := httpstore.NewFromConfig(c)
		if err != nil {
			return nil, err
		}
		a.Remote = store
		remote = store
	}
	a.Sessions = session.NewManager(metadata, remote, session.WithDefaultTarget(c.TargetHours))
	a.Files = files.NewManager(repository.NewBlobRepository(db), metadata,
		files.WithMaxUploadSize(int64(c.MaxUploadSize)))

	err := a.Files.InitBlobStore(ctx)
	if err != nil {
		L.Warn(fmt.Sprintf("file storage unavailable: %v", err))
	}
	loaded := a.Files.LoadAll(ctx)
	if loaded.FilesErr != nil || loaded.FoldersErr != nil {
		L.Warn("some file metadata could not be read and was reset")
	}

	a.Loaded = a.Sessions.Load(ctx)
	if a.Loaded.RemoteErr != nil {
		if errors.Is(a.Loaded.RemoteErr, backend.ErrUnauthorized) {
			L.Warn("remote rejected the token, run `hourbox token` or set " + config.ENV_TOKEN)
		} else {
			L.Debug(fmt.Sprintf("remote load failed: %v", a.Loaded.RemoteErr))
		}
	}
	L.Debug(fmt.Sprintf("loaded %d sessions from %s", a.Loaded.Count, a.Loaded.Source))
	return a, nil
}

// Close waits for background migrations and closes the database.
func (a *App) Close(ctx context.Context) error {
	a.Files.WaitForMigrations()
	return a.DB.Close(ctx)
}

// NeedsReauth reports whether the remote rejected the credential. The
// remote is left alone until SetToken supplies a new one.
func (a *App) NeedsReauth() bool {
	return a.Sessions.NeedsReauth()
}

// SetToken points the session manager at a remote client holding token.
// Sessions are not reloaded.
func (a *App) SetToken(token string) error {
	if a.Config.Remote == nil || !a.Config.Remote.Enabled {
		return fmt.Errorf("no remote configured")
	}
	remoteConfig := *a.Config.Remote
	remoteConfig.Token = token
	c := *a.Config
	c.Remote = &remoteConfig
	store, err := httpstore.NewFromConfig(&c)
	if err != nil {
		return err
	}
	a.Config = &c
	a.Remote = store
	a.Sessions.SetRemote(store)
	return nil
}
