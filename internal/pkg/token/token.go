// Package token issues and verifies the stateless bearer tokens used for
// authentication. Validity is a pure function of signature and expiry; no
// token state is kept server-side.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTTL = 30 * time.Minute

// Issuer signs and verifies HS256 access tokens carrying a user id subject.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer with the process-wide signing secret. A
// non-positive ttl falls back to the 30 minute default.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for subject using the configured TTL.
func (i *Issuer) Issue(subject uuid.UUID) (string, error) {
	return i.IssueWithTTL(subject, i.ttl)
}

// IssueWithTTL returns a signed token for subject expiring after ttl.
// Every issued token carries an expiry claim.
func (i *Issuer) IssueWithTTL(subject uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify decodes the token and returns its subject. The second return is
// false on any failure: malformed token, wrong algorithm, bad signature,
// missing or elapsed expiry, or a subject that is not a UUID. Callers treat
// every failure uniformly as unauthenticated.
func (i *Issuer) Verify(tokenStr string) (uuid.UUID, bool) {
	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return uuid.Nil, false
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return subject, true
}
