package certs

import (
	"crypto"
	"crypto/sha1" //nolint:gosec // certificate thumbprints are SHA-1 by definition.
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"golang.org/x/crypto/pkcs12"

	errUtils "github.com/fabric-cli/fab/errors"
)

// Format is the on-disk encoding of a certificate file.
type Format int

const (
	FormatUnknown Format = iota
	FormatPEM
	FormatPKCS12
)

func (f Format) String() string {
	switch f {
	case FormatPEM:
		return "pem"
	case FormatPKCS12:
		return "pkcs12"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pem":
		return FormatPEM
	case ".pfx", ".p12":
		return FormatPKCS12
	default:
		return FormatUnknown
	}
}

// Material is the normalized result of loading a certificate file, whatever
// its encoding. Certificates[0] is the leaf.
type Material struct {
	Certificates []*x509.Certificate
	PrivateKey   crypto.PrivateKey
	Thumbprint   string
}

// ValidatePath checks that path names a regular file with a supported
// extension. parameter names the flag or variable the path came from.
func ValidatePath(path, parameter string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return errUtils.New(errUtils.ErrInvalidCertPath, errUtils.StatusInvalidCertPath, errUtils.InvalidCertPath(parameter))
	}
	if FormatFromPath(path) == FormatUnknown {
		return errUtils.New(errUtils.ErrInvalidCertFormat, errUtils.StatusInvalidCertificate, errUtils.InvalidCertFormat(parameter))
	}
	return nil
}

// Load reads the certificate at path, decrypting it with password when one
// is given.
func Load(path, password string) (*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(err)
	}

	var m *Material
	switch format := FormatFromPath(path); format {
	case FormatPEM:
		m, err = loadPEM(data, password)
	case FormatPKCS12:
		m, err = loadPKCS12(data, password)
	case FormatUnknown:
		return nil, errUtils.New(errUtils.ErrInvalidCertFormat, errUtils.StatusInvalidCertificate, errUtils.InvalidCertFormat(path))
	}
	if err != nil {
		return nil, readError(err)
	}
	return m, nil
}

func loadPEM(data []byte, password string) (*Material, error) {
	var pw []byte
	if password != "" {
		pw = []byte(password)
	}
	certs, key, err := azidentity.ParseCertificates(data, pw)
	if err != nil {
		return nil, err
	}
	return newMaterial(certs, key), nil
}

// loadPKCS12 converts the archive's bags to PEM blocks and parses them. The
// certificate matching the private key is moved to the front.
func loadPKCS12(data []byte, password string) (*Material, error) {
	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return nil, err
	}

	var certs []*x509.Certificate
	var key crypto.PrivateKey
	for _, block := range blocks {
		switch block.Type {
		case "CERTIFICATE":
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, err
			}
			certs = append(certs, cert)
		case "PRIVATE KEY":
			if key != nil {
				return nil, errUtils.ErrCertMultipleKeys
			}
			if key, err = parsePrivateKey(block); err != nil {
				return nil, err
			}
		}
	}
	if len(certs) == 0 || key == nil {
		return nil, errUtils.ErrCertIncomplete
	}
	return newMaterial(leafFirst(certs, key), key), nil
}

// parsePrivateKey reads the key encodings pkcs12.ToPEM emits: PKCS#1 for RSA
// and SEC 1 for ECDSA.
func parsePrivateKey(block *pem.Block) (crypto.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	return x509.ParsePKCS8PrivateKey(block.Bytes)
}

func leafFirst(certs []*x509.Certificate, key crypto.PrivateKey) []*x509.Certificate {
	signer, ok := key.(crypto.Signer)
	if !ok {
		return certs
	}
	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok {
		return certs
	}
	for i, cert := range certs {
		if pub.Equal(cert.PublicKey) {
			ordered := append([]*x509.Certificate{cert}, certs[:i]...)
			return append(ordered, certs[i+1:]...)
		}
	}
	return certs
}

func newMaterial(certs []*x509.Certificate, key crypto.PrivateKey) *Material {
	return &Material{
		Certificates: certs,
		PrivateKey:   key,
		Thumbprint:   Thumbprint(certs[0]),
	}
}

// Thumbprint returns the lower-case hex SHA-1 of the DER certificate.
func Thumbprint(cert *x509.Certificate) string {
	sum := sha1.Sum(cert.Raw) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func readError(err error) error {
	return errUtils.New(errUtils.ErrCertRead, errUtils.StatusInvalidCertificate, errUtils.CertReadFailed(err.Error()))
}
