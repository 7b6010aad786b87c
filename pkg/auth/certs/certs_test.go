package certs

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
)

// writeTestPEM writes a self-signed certificate and its unencrypted key to
// dir/name and returns the path and the parsed certificate.
func writeTestPEM(t *testing.T, dir, name string) (string, *x509.Certificate) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "fab-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	data = append(data, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})...)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, cert
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"cert.pem":     FormatPEM,
		"cert.PEM":     FormatPEM,
		"cert.pfx":     FormatPKCS12,
		"cert.p12":     FormatPKCS12,
		"cert.crt":     FormatUnknown,
		"no-extension": FormatUnknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	pemPath := filepath.Join(dir, "cert.pem")
	crtPath := filepath.Join(dir, "cert.crt")
	require.NoError(t, os.WriteFile(pemPath, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(crtPath, []byte("x"), 0o600))

	tests := []struct {
		name     string
		path     string
		sentinel error
		status   string
	}{
		{"valid", pemPath, nil, ""},
		{"missing", filepath.Join(dir, "missing.pem"), errUtils.ErrInvalidCertPath, errUtils.StatusInvalidCertPath},
		{"directory", dir, errUtils.ErrInvalidCertPath, errUtils.StatusInvalidCertPath},
		{"bad extension", crtPath, errUtils.ErrInvalidCertFormat, errUtils.StatusInvalidCertificate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path, "FAB_SPN_CERT_PATH")
			if tt.sentinel == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.status, errUtils.StatusCode(err))
			assert.Contains(t, err.Error(), "FAB_SPN_CERT_PATH")
		})
	}
}

func TestLoad_PEM(t *testing.T) {
	path, cert := writeTestPEM(t, t.TempDir(), "spn.pem")

	m, err := Load(path, "")
	require.NoError(t, err)
	require.Len(t, m.Certificates, 1)
	assert.Equal(t, cert.Raw, m.Certificates[0].Raw)
	assert.NotNil(t, m.PrivateKey)
	assert.Equal(t, Thumbprint(cert), m.Thumbprint)
	assert.Len(t, m.Thumbprint, 40)
}

func TestLoad_PKCS12Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spn.pfx")
	require.NoError(t, os.WriteFile(path, []byte("not a pfx"), 0o600))

	_, err := Load(path, "secret")
	assert.ErrorIs(t, err, errUtils.ErrCertRead)
	assert.Equal(t, errUtils.StatusInvalidCertificate, errUtils.StatusCode(err))
}

// testdata/spn.pfx is a self-signed CN=fab-test certificate with its RSA key,
// 3DES encrypted with password "fab-secret".
const (
	testPFXPassword   = "fab-secret"
	testPFXThumbprint = "606120fde8578254c308c1cdc1d28a7f1acc3b61"
)

func TestLoad_PKCS12(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "spn.pfx"))
	require.NoError(t, err)

	for _, name := range []string{"spn.pfx", "spn.p12"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			m, err := Load(path, testPFXPassword)
			require.NoError(t, err)
			require.Len(t, m.Certificates, 1)
			assert.Equal(t, "fab-test", m.Certificates[0].Subject.CommonName)
			assert.IsType(t, &rsa.PrivateKey{}, m.PrivateKey)
			assert.Equal(t, testPFXThumbprint, m.Thumbprint)

			key := m.PrivateKey.(*rsa.PrivateKey)
			assert.True(t, key.PublicKey.Equal(m.Certificates[0].PublicKey))
		})
	}
}

func TestLoad_PKCS12WrongPassword(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "spn.pfx"), "wrong")
	assert.ErrorIs(t, err, errUtils.ErrCertRead)
	assert.Equal(t, errUtils.StatusInvalidCertificate, errUtils.StatusCode(err))
}

func TestLeafFirst(t *testing.T) {
	dir := t.TempDir()
	_, leaf := writeTestPEM(t, dir, "leaf.pem")
	_, other := writeTestPEM(t, dir, "other.pem")

	m, err := Load(filepath.Join(dir, "leaf.pem"), "")
	require.NoError(t, err)

	ordered := leafFirst([]*x509.Certificate{other, leaf}, m.PrivateKey)
	assert.Equal(t, []*x509.Certificate{leaf, other}, ordered)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "gone.pem"), "")
	assert.ErrorIs(t, err, errUtils.ErrCertRead)
}
