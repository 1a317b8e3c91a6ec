package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	L "hourbox/logger"
	"slices"
	"time"
)

// Snapshot is the export file format.
type Snapshot struct {
	ExportDate string    `json:"exportDate"`
	Target     float64   `json:"target"`
	Sessions   []Session `json:"sessions"`
}

type ImportResult struct {
	Imported int
	Dropped  int
	Sync     SyncResult
}

func (m *Manager) Export() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &Snapshot{
		ExportDate: m.now().UTC().Format(time.RFC3339),
		Target:     m.target,
		Sessions:   slices.Clone(m.sessions),
	}
}

func (m *Manager) ExportJSON() ([]byte, error) {
	return MarshalSnapshot(m.Export())
}

// MarshalSnapshot renders an export file.
func MarshalSnapshot(snapshot *Snapshot) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

// Import replaces every session with the ones in data. data is either an
// exported Snapshot or a bare array of sessions. Entries that do not form a
// valid session are dropped and counted; malformed JSON changes nothing.
func (m *Manager) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	raw, target, err := decodeImport(data)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := &ImportResult{}
	seen := map[string]bool{}
	sessions := make([]Session, 0, len(raw))
	for i, entry := range raw {
		s, err := decodeImportedSession(entry)
		if err != nil {
			L.Debug(fmt.Sprintf("import: dropping entry %d: %v", i, err))
			result.Dropped++
			continue
		}
		fields := s.Fields()
		net, err := fields.normalize()
		if err != nil {
			L.Debug(fmt.Sprintf("import: dropping entry %d: %v", i, err))
			result.Dropped++
			continue
		}
		if s.Id == "" || seen[s.Id] {
			s.Id = m.newId()
		}
		seen[s.Id] = true
		s.Date, s.StartTime, s.EndTime = fields.Date, fields.StartTime, fields.EndTime
		s.Category, s.Note, s.NetMinutes = fields.Category, fields.Note, net
		sessions = append(sessions, s)
	}
	m.sessions = sessions
	result.Imported = len(sessions)

	if target > 0 {
		if err := m.setTarget(ctx, target); err != nil {
			L.Warn(fmt.Sprintf("could not store imported target: %v", err))
		}
	}
	result.Sync, err = m.save(ctx)
	return result, err
}

func decodeImport(data []byte) ([]json.RawMessage, float64, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("%w: empty import", ErrValidation)
	}
	var raw []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, 0, fmt.Errorf("%w: malformed session list: %w", ErrValidation, err)
		}
		return raw, 0, nil
	}
	var snapshot struct {
		Target   float64           `json:"target"`
		Sessions []json.RawMessage `json:"sessions"`
	}
	if err := json.Unmarshal(trimmed, &snapshot); err != nil {
		return nil, 0, fmt.Errorf("%w: malformed export: %w", ErrValidation, err)
	}
	if snapshot.Sessions == nil {
		return nil, 0, fmt.Errorf("%w: export has no sessions field", ErrValidation)
	}
	return snapshot.Sessions, snapshot.Target, nil
}

// older exports carry numeric ids
func decodeImportedSession(entry json.RawMessage) (Session, error) {
	var imported struct {
		Session
		Id json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(entry, &imported); err != nil {
		return Session{}, err
	}
	s := imported.Session
	id := bytes.TrimSpace(imported.Id)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		s.Id = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &s.Id); err != nil {
			return Session{}, err
		}
	default:
		s.Id = string(id)
	}
	return s, nil
}
