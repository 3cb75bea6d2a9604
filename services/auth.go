package services

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openbingo/board-server/models"
)

// Guard gates privileged board operations behind a rotating PIN and a
// single active bearer token. It is not safe for concurrent use on its
// own; the owning Engine serializes access.
type Guard struct {
	pin    string
	ttl    time.Duration
	secret []byte
	token  string
	expiry time.Time
}

func NewGuard(pin string, ttl time.Duration) *Guard {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	return &Guard{pin: pin, ttl: ttl, secret: secret}
}

func (g *Guard) issue() (string, error) {
	now := time.Now()
	jti := make([]byte, 8)
	if _, err := rand.Read(jti); err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(g.ttl).Unix(),
		"jti": hex.EncodeToString(jti),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", err
	}
	g.token = signed
	g.expiry = now.Add(g.ttl)
	return signed, nil
}

// Unlock issues a fresh token when the candidate PIN matches.
func (g *Guard) Unlock(pin string) (models.AuthSession, error) {
	if normalizePin(pin) != normalizePin(g.pin) {
		return models.AuthSession{}, models.ErrInvalidPin
	}
	token, err := g.issue()
	if err != nil {
		return models.AuthSession{}, err
	}
	return models.AuthSession{Token: token, TTLMs: g.ttl.Milliseconds()}, nil
}

// Refresh rolls the current token forward, invalidating the old one.
func (g *Guard) Refresh(token string) (models.AuthSession, error) {
	if err := g.Check(token); err != nil {
		return models.AuthSession{}, err
	}
	next, err := g.issue()
	if err != nil {
		return models.AuthSession{}, err
	}
	return models.AuthSession{Token: next, TTLMs: g.ttl.Milliseconds()}, nil
}

// Lock unconditionally invalidates the current token.
func (g *Guard) Lock() {
	g.token = ""
	g.expiry = time.Time{}
}

// Check validates a presented token: it must be the currently-issued
// token, carry a valid signature, and not be expired.
func (g *Guard) Check(token string) error {
	if !g.Valid() {
		return models.ErrAuthRequired
	}
	if token == "" || token != g.token {
		return models.ErrTokenInvalid
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return models.ErrTokenInvalid
	}
	return nil
}

// Valid reports whether an unexpired token is outstanding.
func (g *Guard) Valid() bool {
	return g.token != "" && time.Now().Before(g.expiry)
}

// ChangePin rotates the board PIN. The current PIN is re-confirmed and
// the next PIN must be 4-11 characters.
func (g *Guard) ChangePin(current, next string) error {
	current = normalizePin(current)
	next = normalizePin(next)
	if current != normalizePin(g.pin) {
		return models.ErrCurrentPin
	}
	if len(next) < 4 || len(next) >= 12 {
		return models.ErrNextPin
	}
	g.pin = next
	return nil
}

func normalizePin(pin string) string {
	return strings.TrimSpace(pin)
}
