package tokencache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/zalando/go-keyring"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/filesystem"
	log "github.com/fabric-cli/fab/pkg/logger"
)

const (
	// KeyringService and KeyringUser locate the cache encryption key in the
	// OS keyring.
	KeyringService = "fab"
	KeyringUser    = "token-cache-key"

	dirPerms  = 0o700
	filePerms = 0o600
)

// Cache persists the MSAL token cache to a single file. The file is
// encrypted with an age X25519 key held in the OS keyring. When no keyring is
// available and plaintext is allowed, the file is written unencrypted.
type Cache struct {
	path     string
	identity *age.X25519Identity
}

var _ cache.ExportReplace = (*Cache)(nil)

// New opens the token cache at path. allowPlaintext mirrors the
// encryption_fallback_enabled setting.
func New(path string, allowPlaintext bool) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	identity, err := loadOrCreateIdentity()
	if err != nil {
		log.Debug("Token cache encryption unavailable", "error", err)
		if !allowPlaintext {
			return nil, errUtils.Build(
				errUtils.New(errUtils.ErrEncryptedCache, errUtils.StatusEncryptionFailed, errUtils.MsgEncryptedCacheError),
			).WithHint("Install and unlock a system keyring, or allow an unencrypted cache").Err()
		}
		log.Warn("Storing the token cache unencrypted", "path", path)
		return &Cache{path: path}, nil
	}

	return &Cache{path: path, identity: identity}, nil
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Encrypted reports whether the cache file is encrypted.
func (c *Cache) Encrypted() bool {
	return c.identity != nil
}

// Replace loads the cache from disk into MSAL's in-memory cache.
func (c *Cache) Replace(ctx context.Context, u cache.Unmarshaler, _ cache.ReplaceHints) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return filesystem.WithFileLock(c.path, func() error {
		data, err := os.ReadFile(c.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Debug("Token cache does not exist, starting with an empty cache", "path", c.path)
				return nil
			}
			return fmt.Errorf("failed to read token cache: %w", err)
		}

		plain, err := c.decrypt(data)
		if err != nil {
			log.Debug("Failed to decrypt token cache, starting fresh", "error", err)
			return nil
		}

		if err := u.Unmarshal(plain); err != nil {
			log.Debug("Failed to unmarshal token cache, starting fresh", "error", err)
			return nil
		}

		log.Debug("Loaded token cache", "path", c.path, "size", len(plain), "encrypted", c.Encrypted())
		return nil
	})
}

// Export writes MSAL's in-memory cache to disk.
func (c *Cache) Export(ctx context.Context, m cache.Marshaler, _ cache.ExportHints) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	plain, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal token cache: %w", err)
	}

	data, err := c.encrypt(plain)
	if err != nil {
		return errUtils.New(errUtils.ErrEncryptedCache, errUtils.StatusEncryptionFailed, err.Error())
	}

	return filesystem.WithFileLock(c.path, func() error {
		if err := filesystem.WriteFileAtomic(c.path, data, filePerms); err != nil {
			return fmt.Errorf("failed to write token cache: %w", err)
		}
		log.Debug("Exported token cache", "path", c.path, "size", len(plain))
		return nil
	})
}

// Delete removes the cache file. It reports whether a file existed.
func Delete(path string) (bool, error) {
	var removed bool
	err := filesystem.WithFileLock(path, func() error {
		var err error
		removed, err = filesystem.RemoveIfExists(path)
		return err
	})
	return removed, err
}

func (c *Cache) encrypt(plain []byte) ([]byte, error) {
	if c.identity == nil {
		return plain, nil
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, c.identity.Recipient())
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plain); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Cache) decrypt(data []byte) ([]byte, error) {
	if c.identity == nil {
		return data, nil
	}

	r, err := age.Decrypt(bytes.NewReader(data), c.identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func loadOrCreateIdentity() (*age.X25519Identity, error) {
	secret, err := keyring.Get(KeyringService, KeyringUser)
	if err == nil {
		return age.ParseX25519Identity(secret)
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("system keyring not available: %w", err)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, err
	}
	if err := keyring.Set(KeyringService, KeyringUser, identity.String()); err != nil {
		return nil, fmt.Errorf("failed to store cache key in keyring: %w", err)
	}
	log.Debug("Created token cache encryption key", "service", KeyringService)
	return identity, nil
}
