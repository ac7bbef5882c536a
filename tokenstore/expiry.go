package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns when token should stop being used: now+ttl, or the token's
// exp claim if it is a JWT that expires earlier. The signature is not checked;
// only the remote API can do that.
func Expiry(token string, now time.Time, ttl time.Duration) time.Time {
	expiresAt := now.Add(ttl)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return expiresAt
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return expiresAt
	}
	if exp.Time.Before(expiresAt) {
		return exp.Time
	}
	return expiresAt
}
