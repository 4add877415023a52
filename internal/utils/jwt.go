package utils // package utils provides helper functions for session tokens and hashing

import (
	"crypto/sha256" // SHA-256 hashing for stored session ids
	"encoding/hex"  // hex encoding of digests
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for signing the session cookie
	"github.com/google/uuid"
)

// ErrInvalidSession is returned for any cookie value that is not a valid,
// unexpired session token signed with our key.
var ErrInvalidSession = errors.New("invalid session token")

// SessionToken is the signed cookie value together with its expiry.  The
// token carries only the session id; everything else lives in the store.
type SessionToken struct {
	Token string    // the serialized JWT string
	SID   string    // session id (uuid)
	Exp   time.Time // the UTC expiration time
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string { return uuid.NewString() }

// NewSessionToken builds and signs an HS256 JWT whose sid claim names a
// session.  The JWT includes exp and iat.
func NewSessionToken(key []byte, sid string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(key)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, SID: sid, Exp: exp}, nil
}

// ParseSessionToken verifies raw and returns the session id it names.
func ParseSessionToken(key []byte, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject anything that is not HMAC signed.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSession
	}
	if _, err := uuid.Parse(sid); err != nil {
		return "", ErrInvalidSession
	}
	return sid, nil
}

// HashSessionID returns the SHA-256 hex digest of a session id.  Stores
// that persist outside the process key their rows by this hash, never by
// the raw id.
func HashSessionID(sid string) string {
	sum := sha256.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:])
}
