package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Identity is what a verified token vouches for.
type Identity struct {
	UserID   int
	Username string
}

// Claims is the signed payload: {id, username} plus registered claims.
type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens. New tokens are signed with
// the current secret; verification also accepts previous secrets so the
// secret can be rotated while older tokens run out their TTL.
type Tokens struct {
	secret   []byte
	previous [][]byte
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokens(secret string, previous []string, issuer string, ttl time.Duration) *Tokens {
	t := &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, p := range previous {
		t.previous = append(t.previous, []byte(p))
	}
	return t
}

func (t *Tokens) Issue(id Identity) (string, error) {
	now := t.now()
	claims := Claims{
		ID:       id.UserID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and issuer. It never touches the store.
func (t *Tokens) Verify(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}
	var lastErr error
	for _, secret := range t.keys() {
		id, err := t.verifyWith(raw, secret)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, ErrExpiredToken) {
			return Identity{}, err
		}
		lastErr = err
	}
	return Identity{}, lastErr
}

func (t *Tokens) keys() [][]byte {
	return append([][]byte{t.secret}, t.previous...)
}

func (t *Tokens) verifyWith(raw string, secret []byte) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}
	if claims.ID <= 0 || claims.Username == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.ID, Username: claims.Username}, nil
}
