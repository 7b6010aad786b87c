package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/types"
	"github.com/fabric-cli/fab/pkg/filesystem"
	log "github.com/fabric-cli/fab/pkg/logger"
)

const (
	dirPerms  = 0o700
	filePerms = 0o600
)

// IdentityConfig is the typed view of the auth file. It carries identifiers
// only; secrets never reach disk.
type IdentityConfig struct {
	IdentityType types.IdentityType `json:"identity_type,omitempty" mapstructure:"identity_type"`
	TenantID     string             `json:"fab_tenant_id,omitempty" mapstructure:"fab_tenant_id"`
	ClientID     string             `json:"fab_spn_client_id,omitempty" mapstructure:"fab_spn_client_id"`
}

// Store is the auth.json key-value record. Every mutation rewrites the whole
// file. A single writer is assumed.
type Store struct {
	path   string
	record map[string]any
}

// Open loads the auth file at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the auth file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the record from disk. An absent or empty file yields an empty
// record. Legacy keys are migrated and written back immediately.
func (s *Store) Load() error {
	s.record = map[string]any{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Join(errUtils.ErrAuthFileRead, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.record); err != nil {
		return errors.Join(errUtils.ErrAuthFileRead, err)
	}
	if s.record == nil {
		s.record = map[string]any{}
	}

	if mode, ok := s.record[types.LegacyKeyAuthMode]; ok {
		log.Debug("Migrating legacy auth key", "from", types.LegacyKeyAuthMode, "to", types.KeyIdentityType)
		s.record[types.KeyIdentityType] = mode
		delete(s.record, types.LegacyKeyAuthMode)
		if err := s.save(); err != nil {
			return err
		}
	}

	if _, ok := s.record[types.LegacyKeyAuthority]; ok {
		log.Debug("Removing legacy auth key", "key", types.LegacyKeyAuthority)
		delete(s.record, types.LegacyKeyAuthority)
		if err := s.save(); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.record[key]
	return v, ok
}

// GetString returns the value under key as a string, or "" when absent or
// not a string.
func (s *Store) GetString(key string) string {
	v, ok := s.record[key]
	if !ok || v == nil {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Set stores one value and flushes the record.
func (s *Store) Set(key string, value any) error {
	s.record[key] = value
	return s.save()
}

// SetMany merges properties into the record and flushes once. Byte slices
// become strings; nested maps are decoded the same way and stored as their
// JSON text.
func (s *Store) SetMany(properties map[string]any) error {
	decoded, err := decodeProperties(properties)
	if err != nil {
		return err
	}
	for k, v := range decoded {
		s.record[k] = v
	}
	return s.save()
}

// Clear empties the record and flushes it.
func (s *Store) Clear() error {
	s.record = map[string]any{}
	return s.save()
}

// All returns a copy of the record.
func (s *Store) All() map[string]any {
	out := make(map[string]any, len(s.record))
	for k, v := range s.record {
		out[k] = v
	}
	return out
}

// Identity returns the typed identity configuration. Keys it does not know
// are ignored; values that cannot be read as strings are left empty.
func (s *Store) Identity() IdentityConfig {
	var cfg IdentityConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err == nil {
		err = dec.Decode(s.record)
	}
	if err != nil {
		log.Debug("Auth file holds unexpected values", "path", s.path, "error", err)
	}
	return cfg
}

func (s *Store) save() error {
	data, err := json.Marshal(s.record)
	if err != nil {
		return errors.Join(errUtils.ErrAuthFileWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerms); err != nil {
		return errors.Join(errUtils.ErrAuthFileWrite, err)
	}
	if err := filesystem.WriteFileAtomic(s.path, data, filePerms); err != nil {
		return errors.Join(errUtils.ErrAuthFileWrite, err)
	}
	return nil
}

func decodeProperties(properties map[string]any) (map[string]any, error) {
	decoded := make(map[string]any, len(properties))
	for k, v := range properties {
		switch val := v.(type) {
		case []byte:
			decoded[k] = string(val)
		case map[string]any:
			nested, err := decodeProperties(val)
			if err != nil {
				return nil, err
			}
			text, err := json.Marshal(nested)
			if err != nil {
				return nil, fmt.Errorf("%w: encoding %q: %w", errUtils.ErrAuthFileWrite, k, err)
			}
			decoded[k] = string(text)
		default:
			decoded[k] = v
		}
	}
	return decoded, nil
}
