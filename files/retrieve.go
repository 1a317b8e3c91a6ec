package files

import (
	"context"
	"errors"
	"fmt"
	"hourbox/checksum"
	"hourbox/database"
	L "hourbox/logger"
	"hourbox/metrics"
	"strings"
)

type outcome int

const (
	OUTCOME_FOUND outcome = iota
	OUTCOME_NOT_APPLICABLE
	OUTCOME_FAILED
)

type retrievalStrategy struct {
	name     string
	retrieve func(ctx context.Context, record FileRecord) ([]byte, outcome, error)
}

// Retrieve resolves the content of a file by trying each strategy in order:
// legacy inline data first, then the blob store. Serving inline data also
// schedules a background move of that data into the blob store.
func (m *Manager) Retrieve(ctx context.Context, fileId string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.fileIndex(fileId)
	if i < 0 {
		return nil, fmt.Errorf("could not retrieve %s: %w", fileId, ErrFileNotFound)
	}
	record := m.files[i]

	var failures []error
	for _, strategy := range m.strategies {
		data, result, err := strategy.retrieve(ctx, record)
		switch result {
		case OUTCOME_FOUND:
			L.Debug(fmt.Sprintf("retrieved %s via %s", record.Id, strategy.name))
			return data, nil
		case OUTCOME_FAILED:
			L.Debug(fmt.Sprintf("retrieval of %s via %s failed: %v", record.Id, strategy.name, err))
			if errors.Is(err, ErrBlobStoreUnavailable) {
				return nil, err
			}
			failures = append(failures, fmt.Errorf("%s: %w", strategy.name, err))
		}
	}
	if len(failures) > 0 {
		return nil, fmt.Errorf("could not retrieve %s: %w: %w", record.Name, ErrDataMissing, errors.Join(failures...))
	}
	return nil, fmt.Errorf("could not retrieve %s: %w", record.Name, ErrDataMissing)
}

func (m *Manager) retrieveInline(ctx context.Context, record FileRecord) ([]byte, outcome, error) {
	if record.Kind() != FILE_KIND_LEGACY_INLINE {
		return nil, OUTCOME_NOT_APPLICABLE, nil
	}
	data, err := decodeInline(*record.InlineData)
	if err != nil {
		return nil, OUTCOME_FAILED, err
	}
	if m.blobStoreErr() == nil {
		m.scheduleMigration(ctx, record.Id, data)
	}
	return data, OUTCOME_FOUND, nil
}

func (m *Manager) retrieveBlob(ctx context.Context, record FileRecord) ([]byte, outcome, error) {
	if err := m.blobStoreErr(); err != nil {
		return nil, OUTCOME_FAILED, err
	}
	data, err := m.blobs.Get(ctx, record.Id)
	if err != nil {
		if errors.Is(err, database.ErrDoesNotExist) {
			return nil, OUTCOME_NOT_APPLICABLE, nil
		}
		return nil, OUTCOME_FAILED, err
	}
	return data, OUTCOME_FOUND, nil
}

// decodeInline accepts plain base64 and data URLs ("data:<mime>;base64,<payload>").
func decodeInline(inline string) ([]byte, error) {
	payload := strings.TrimSpace(inline)
	if strings.HasPrefix(payload, "data:") {
		_, after, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, fmt.Errorf("malformed data url")
		}
		payload = after
	}
	data, err := checksum.Base64DecodeStr(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed inline data: %w", err)
	}
	return data, nil
}

// scheduleMigration moves decoded inline data into the blob store in the
// background. Must be called with m.mu held. Failures only get logged; the
// record keeps its inline data and is retried on the next retrieval.
func (m *Manager) scheduleMigration(ctx context.Context, fileId string, data []byte) {
	if m.migrating[fileId] {
		return
	}
	m.migrating[fileId] = true
	m.migrations.Add(1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer m.migrations.Done()
		err := m.migrate(ctx, fileId, data)
		metrics.RecordMigration(err)
		if err != nil {
			L.Warn(fmt.Sprintf("could not migrate %s to the blob store: %v", fileId, err))
		} else {
			L.Debug(fmt.Sprintf("migrated %s to the blob store", fileId))
		}
	}()
}

func (m *Manager) migrate(ctx context.Context, fileId string, data []byte) error {
	defer func() {
		m.mu.Lock()
		delete(m.migrating, fileId)
		m.mu.Unlock()
	}()

	err := m.blobs.Put(ctx, fileId, data)
	if err != nil {
		metrics.RecordPersistFailure(metrics.STORE_BLOB)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.fileIndex(fileId)
	if i < 0 {
		// deleted while migrating
		return m.blobs.Delete(ctx, fileId)
	}
	record := &m.files[i]
	previous := record.InlineData
	record.InlineData = nil
	if record.SizeBytes == 0 {
		record.SizeBytes = int64(len(data))
	}
	err = m.persistFiles(ctx)
	if err != nil {
		record.InlineData = previous
		return err
	}
	return nil
}

// WaitForMigrations blocks until every scheduled migration has finished.
func (m *Manager) WaitForMigrations() {
	m.migrations.Wait()
}
