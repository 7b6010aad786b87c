package jwt

import (
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"

	errUtils "github.com/fabric-cli/fab/errors"
)

// ParseUnverified decodes token without checking its signature. Only use the
// result for display or routing decisions.
func ParseUnverified(token string) (Claims, *gojwt.Token, error) {
	claims := Claims{}
	parsed, _, err := gojwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, nil, errUtils.New(errUtils.ErrInvalidJWTFormat, errUtils.StatusAuthenticationFailed, errUtils.MsgInvalidJWTToken)
	}
	return claims, parsed, nil
}

// KeyID returns the kid header of token.
func KeyID(token string) (string, error) {
	_, parsed, err := ParseUnverified(token)
	if err != nil {
		return "", err
	}
	kid, _ := parsed.Header["kid"].(string)
	if kid == "" {
		return "", errUtils.ErrPublicKeyNotFound
	}
	return kid, nil
}

// Select returns the string form of each requested claim present in claims.
// It returns nil when none are present.
func Select(claims Claims, names []string) map[string]string {
	out := map[string]string{}
	for _, name := range names {
		v, ok := claims[name]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			out[name] = s
			continue
		}
		out[name] = fmt.Sprint(v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
