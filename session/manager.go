package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hourbox/backend"
	"hourbox/database"
	"hourbox/database/repository"
	L "hourbox/logger"
	"hourbox/metrics"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	KEY_SESSIONS     = "sessions"
	KEY_TARGET_HOURS = "settings.target_hours"
)

// RemoteStore is the authoritative server side copy of the session list.
// It is always read and written as a whole.
type RemoteStore interface {
	Fetch(ctx context.Context) (*Document, error)
	Push(ctx context.Context, doc *Document) error
}

type LoadSource string

const (
	LOAD_SOURCE_REMOTE LoadSource = "REMOTE"
	LOAD_SOURCE_CACHE  LoadSource = "CACHE"
	LOAD_SOURCE_EMPTY  LoadSource = "EMPTY"
)

type LoadResult struct {
	Source LoadSource
	Count  int
	// RemoteErr is set whenever the remote fetch failed, even if the cache served the data.
	RemoteErr error
	CacheErr  error
}

type SyncResult struct {
	At        time.Time
	Pushed    bool
	RemoteErr error
}

type Manager struct {
	mu            sync.Mutex
	metadata      repository.MetadataRepository
	remote        RemoteStore
	sessions      []Session
	target        float64
	defaultTarget float64
	lastSync      SyncResult
	// authErr holds the rejection of the current credential; the remote is
	// not contacted again until SetRemote supplies a new one
	authErr error
	now           func() time.Time
	newId         func() string
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithDefaultTarget(hours float64) Option {
	return func(m *Manager) {
		m.defaultTarget = hours
		m.target = hours
	}
}

func WithIdGenerator(newId func() string) Option {
	return func(m *Manager) { m.newId = newId }
}

// NewManager builds a manager over the local metadata store. remote may be
// nil, in which case the manager works local only.
func NewManager(metadata repository.MetadataRepository, remote RemoteStore, opts ...Option) *Manager {
	m := &Manager{
		metadata:      metadata,
		remote:        remote,
		sessions:      []Session{},
		target:        500,
		defaultTarget: 500,
		now:           time.Now,
		newId:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load prefers the remote copy and falls back to the local cache. It never fails;
// the result tells where the data came from and what went wrong on the way.
func (m *Manager) Load(ctx context.Context) LoadResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadTarget(ctx)

	result := LoadResult{}
	if m.remote != nil && m.authErr != nil {
		L.Debug("remote credential was rejected, using local cache")
		result.RemoteErr = m.authErr
	} else if m.remote != nil {
		doc, err := m.remote.Fetch(ctx)
		metrics.RecordRemote("fetch", err)
		m.noteAuth(err)
		if err == nil {
			m.sessions = normalizeLoaded(doc.Sessions)
			result.Source = LOAD_SOURCE_REMOTE
			result.Count = len(m.sessions)
			if err := m.writeCache(ctx); err != nil {
				L.Warn(fmt.Sprintf("could not mirror remote sessions locally: %v", err))
				result.CacheErr = err
			}
			L.Debug(fmt.Sprintf("loaded %d sessions from remote", result.Count))
			return result
		}
		L.Warn(fmt.Sprintf("remote unavailable, using local cache: %v", err))
		result.RemoteErr = err
	}

	cached, err := m.readCache(ctx)
	if err != nil {
		if !errors.Is(err, database.ErrDoesNotExist) {
			L.Warn(fmt.Sprintf("could not read cached sessions: %v", err))
			result.CacheErr = err
		}
		m.sessions = []Session{}
		result.Source = LOAD_SOURCE_EMPTY
		return result
	}
	m.sessions = cached
	result.Source = LOAD_SOURCE_CACHE
	result.Count = len(cached)
	L.Debug(fmt.Sprintf("loaded %d sessions from local cache", result.Count))
	return result
}

// Save writes the local cache first and then pushes to the remote. Only a
// local failure is returned; the remote outcome is in the SyncResult.
func (m *Manager) Save(ctx context.Context) (SyncResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(ctx)
}

func (m *Manager) save(ctx context.Context) (SyncResult, error) {
	result := SyncResult{At: m.now()}
	persistErr := m.writeCache(ctx)
	if persistErr != nil {
		metrics.RecordPersistFailure(metrics.STORE_METADATA)
		L.Warn(fmt.Sprintf("sessions kept in memory only: %v", persistErr))
	}

	switch {
	case m.remote == nil:
	case m.authErr != nil:
		result.RemoteErr = m.authErr
	default:
		err := m.remote.Push(ctx, NewDocument(slices.Clone(m.sessions)))
		metrics.RecordRemote("push", err)
		m.noteAuth(err)
		if err != nil {
			L.Warn(fmt.Sprintf("remote sync failed, changes are saved locally: %v", err))
			result.RemoteErr = err
		} else {
			result.Pushed = true
		}
	}
	m.lastSync = result
	return result, persistErr
}

func (m *Manager) noteAuth(err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		m.authErr = err
	}
}

// NeedsReauth reports whether the remote rejected the credential. Pushes and
// fetches are skipped until SetRemote is called.
func (m *Manager) NeedsReauth() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authErr != nil
}

// SetRemote replaces the remote store, typically with one holding a new
// credential, and forgets an earlier rejection.
func (m *Manager) SetRemote(remote RemoteStore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remote = remote
	m.authErr = nil
}

func (m *Manager) LastSync() SyncResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSync
}

// AddSession validates fields and appends a new session. On ErrPersist the
// session has been added in memory.
func (m *Manager) AddSession(ctx context.Context, fields Fields) (*Session, error) {
	net, err := fields.normalize()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Session{
		Id:           m.newId(),
		Date:         fields.Date,
		StartTime:    fields.StartTime,
		EndTime:      fields.EndTime,
		BreakMinutes: fields.BreakMinutes,
		Category:     fields.Category,
		Note:         fields.Note,
		NetMinutes:   net,
	}
	m.sessions = append(m.sessions, s)
	_, err = m.save(ctx)
	return &s, err
}

func (m *Manager) UpdateSession(ctx context.Context, id string, fields Fields) (*Session, error) {
	net, err := fields.normalize()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("could not update %s: %w", id, ErrSessionNotFound)
	}
	s := &m.sessions[i]
	s.Date = fields.Date
	s.StartTime = fields.StartTime
	s.EndTime = fields.EndTime
	s.BreakMinutes = fields.BreakMinutes
	s.Category = fields.Category
	s.Note = fields.Note
	s.NetMinutes = net
	updated := *s
	_, err = m.save(ctx)
	return &updated, err
}

// DeleteSession removes a session by id. Unknown ids are not an error.
func (m *Manager) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = slices.DeleteFunc(m.sessions, func(s Session) bool { return s.Id == id })
	_, err := m.save(ctx)
	return err
}

// Clear wipes every session locally and remotely.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = []Session{}
	_, err := m.save(ctx)
	return err
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrSessionNotFound
	}
	s := m.sessions[i]
	return &s, nil
}

func (m *Manager) Sessions() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sessions)
}

func (m *Manager) TotalNetMinutes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return totalMinutes(m.sessions)
}

func (m *Manager) TotalNetHours() float64 {
	return float64(m.TotalNetMinutes()) / 60
}

func (m *Manager) HoursForDate(date string) float64 {
	return m.HoursBetween(date, date)
}

// HoursBetween sums net hours for dates in [from, to], both YYYY-MM-DD.
func (m *Manager) HoursBetween(from string, to string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, s := range m.sessions {
		if s.Date >= from && s.Date <= to {
			total += s.NetMinutes
		}
	}
	return float64(total) / 60
}

// SessionsForDate returns the sessions of one day ordered by start time.
func (m *Manager) SessionsForDate(date string) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := []Session{}
	for _, s := range m.sessions {
		if s.Date == date {
			day = append(day, s)
		}
	}
	slices.SortStableFunc(day, func(a, b Session) int {
		am, _ := parseClock(a.StartTime)
		bm, _ := parseClock(b.StartTime)
		return am - bm
	})
	return day
}

// Dates lists the distinct dates carrying sessions, ascending.
func (m *Manager) Dates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	dates := []string{}
	for _, s := range m.sessions {
		if !slices.Contains(dates, s.Date) {
			dates = append(dates, s.Date)
		}
	}
	slices.Sort(dates)
	return dates
}

func (m *Manager) Target() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

func (m *Manager) SetTarget(ctx context.Context, hours float64) error {
	if hours <= 0 {
		return fmt.Errorf("%w: target must be positive", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setTarget(ctx, hours)
}

func (m *Manager) setTarget(ctx context.Context, hours float64) error {
	m.target = hours
	err := m.metadata.Set(ctx, KEY_TARGET_HOURS, strconv.FormatFloat(hours, 'f', -1, 64))
	if err != nil {
		metrics.RecordPersistFailure(metrics.STORE_METADATA)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (m *Manager) loadTarget(ctx context.Context) {
	value, err := m.metadata.Get(ctx, KEY_TARGET_HOURS)
	if err != nil {
		if !errors.Is(err, database.ErrDoesNotExist) {
			L.Warn(fmt.Sprintf("could not read target hours: %v", err))
		}
		m.target = m.defaultTarget
		return
	}
	hours, err := strconv.ParseFloat(value, 64)
	if err != nil || hours <= 0 {
		L.Warn(fmt.Sprintf("ignoring invalid stored target %q", value))
		m.target = m.defaultTarget
		return
	}
	m.target = hours
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.sessions, func(s Session) bool { return s.Id == id })
}

func (m *Manager) writeCache(ctx context.Context) error {
	data, err := json.Marshal(m.sessions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	err = m.metadata.Set(ctx, KEY_SESSIONS, string(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (m *Manager) readCache(ctx context.Context) ([]Session, error) {
	value, err := m.metadata.Get(ctx, KEY_SESSIONS)
	if err != nil {
		return nil, err
	}
	var sessions []Session
	err = json.Unmarshal([]byte(value), &sessions)
	if err != nil {
		return nil, fmt.Errorf("malformed session cache: %w", err)
	}
	return normalizeLoaded(sessions), nil
}

// normalizeLoaded keeps stored sessions as they are but restores the net
// minutes invariant, which older clients did not always maintain.
func normalizeLoaded(sessions []Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		s.NetMinutes = ComputeNetMinutes(s.StartTime, s.EndTime, s.BreakMinutes)
		out = append(out, s)
	}
	return out
}
