// Package storage holds the journal's on-device state: small serialized
// values under fixed keys, the way a browser keeps localStorage.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed keys the application writes.
const (
	KeyTrades       = "trades"
	KeyUser         = "user"
	KeyCredentials  = "credentials"
	// KeyRemovedUsers lists admin directory ids deleted by an admin.
	KeyRemovedUsers = "removed_users"
)

var ErrNotFound = errors.New("key not found")

type Storage interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Type   string // "memory", "file" or "sqlite"
	Dir    string
	DBPath string
}

func Open(o Options) (Storage, error) {
	switch o.Type {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(o.Dir)
	case "sqlite":
		return NewSQLite(o.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage type %q", o.Type)
	}
}

// LoadJSON decodes the value under key into v. It reports false, with no
// error, when the key has never been written.
func LoadJSON(s Storage, key string, v any) (bool, error) {
	data, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(key, data)
}
