package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ServerStorage selects where `hourbox serve` keeps session documents.
type ServerStorage string

const (
	STORAGE_SQLITE   ServerStorage = "sqlite"
	STORAGE_POSTGRES ServerStorage = "postgres"
	STORAGE_REDIS    ServerStorage = "redis"
)

func (s ServerStorage) String() string {
	switch s {
	case STORAGE_SQLITE, STORAGE_POSTGRES, STORAGE_REDIS:
		return string(s)
	default:
		return "unknown"
	}
}

func ParseServerStorage(storageStr string) (ServerStorage, error) {
	s := ServerStorage(strings.ToLower(strings.TrimSpace(storageStr)))
	switch s {
	case STORAGE_SQLITE, STORAGE_POSTGRES, STORAGE_REDIS:
		return s, nil
	default:
		return "", fmt.Errorf("invalid server storage: %s", storageStr)
	}
}

func (storage *ServerStorage) UnmarshalJSON(data []byte) error {
	var maybeStorage string
	err := json.Unmarshal(data, &maybeStorage)
	if err != nil {
		return err
	}
	s, err := ParseServerStorage(maybeStorage)
	if err != nil {
		return fmt.Errorf("unknown storage: %s. supported storages are: %s, %s, %s",
			maybeStorage, STORAGE_SQLITE, STORAGE_POSTGRES, STORAGE_REDIS)
	}
	*storage = s
	return nil
}
