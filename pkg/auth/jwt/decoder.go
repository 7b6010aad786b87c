package jwt

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
)

const fetchTimeout = 30 * time.Second

// Claims is a decoded token payload.
type Claims = gojwt.MapClaims

// Decoder verifies RS256 access tokens against the signing keys published by
// the identity provider. The last key that verified a token is kept in memory
// and tried first.
type Decoder struct {
	authority  func() string
	httpClient *http.Client
	cachedKey  *rsa.PublicKey
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithHTTPClient sets the client used to download the key set.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Decoder) {
		d.httpClient = c
	}
}

// NewDecoder creates a Decoder. authority is called on every key fetch so a
// tenant change takes effect without rebuilding the decoder.
func NewDecoder(authority func() string, opts ...Option) *Decoder {
	d := &Decoder{
		authority:  authority,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode verifies token and returns its claims. When expectedAudience is
// non-empty the aud claim must match it.
func (d *Decoder) Decode(ctx context.Context, token, expectedAudience string) (Claims, error) {
	if d.cachedKey != nil {
		claims, err := parse(token, d.cachedKey, expectedAudience)
		if err == nil {
			return claims, nil
		}
		log.Debug("JWT decode with cached key failed, fetching a new key", "error", err)
	}

	key, err := d.fetchKey(ctx, token)
	if err != nil {
		log.Debug("Failed to fetch JWT signing key", "error", err)
		return nil, decodeError(err)
	}

	claims, err := parse(token, key, expectedAudience)
	if err != nil {
		log.Debug("JWT decode failed", "error", err)
		return nil, decodeError(err)
	}

	d.cachedKey = key
	return claims, nil
}

// JWKSURL returns the key set location for the current authority.
func (d *Decoder) JWKSURL() string {
	authority := types.DefaultAuthority
	if d.authority != nil {
		if a := d.authority(); a != "" {
			authority = a
		}
	}
	return strings.TrimSuffix(authority, "/") + types.JWKSPath
}

func (d *Decoder) fetchKey(ctx context.Context, token string) (*rsa.PublicKey, error) {
	kid, err := KeyID(token)
	if err != nil {
		return nil, err
	}

	url := d.JWKSURL()
	set, err := jwk.Fetch(ctx, url, jwk.WithHTTPClient(d.httpClient))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: kid %q", errUtils.ErrPublicKeyNotFound, kid)
	}

	var raw any
	if err := jwk.Export(key, &raw); err != nil {
		return nil, fmt.Errorf("exporting key %q: %w", kid, err)
	}
	pub, ok := raw.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key %q is %T, not RSA", errUtils.ErrPublicKeyNotFound, kid, raw)
	}
	return pub, nil
}

func parse(token string, key *rsa.PublicKey, expectedAudience string) (Claims, error) {
	opts := []gojwt.ParserOption{gojwt.WithValidMethods([]string{gojwt.SigningMethodRS256.Alg()})}
	if expectedAudience != "" {
		opts = append(opts, gojwt.WithAudience(expectedAudience))
	}

	claims := Claims{}
	_, err := gojwt.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func decodeError(cause error) error {
	b := errUtils.Build(errUtils.New(errUtils.ErrJWTDecodeFailed, errUtils.StatusAuthenticationFailed, errUtils.MsgJWTDecodeFailed))
	if errUtils.Is(cause, errUtils.ErrPublicKeyNotFound) {
		b = b.WithSentinel(errUtils.ErrPublicKeyNotFound).WithHint(errUtils.MsgPublicKeyNotFound)
	}
	return b.Err()
}
