// Package receipt signs daily challenge results into share codes that can be
// checked offline by anyone holding the same secret.
package receipt

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
	"github.com/isaacjstriker/blockgrid/internal/types"
)

// ErrInvalid is returned for codes that fail signature or content checks.
var ErrInvalid = errors.New("invalid receipt")

// Claims is the signed payload of a receipt.
type Claims struct {
	Player string `json:"player"`
	Date   string `json:"date"`
	Seed   uint32 `json:"seed"`
	Score  int    `json:"score"`
	Lines  int    `json:"lines"`
	jwt.RegisteredClaims
}

const keyInfo = "blockgrid daily receipt v1"

// signingKey derives the HMAC key from the configured secret.
func signingKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive receipt key: %w", err)
	}
	return key, nil
}

// Issue signs a daily run result.
func Issue(secret string, r types.RunResult, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("failed to issue receipt: empty secret")
	}
	if r.Mode != "daily" || r.Date == "" {
		return "", fmt.Errorf("failed to issue receipt: %q is not a daily run", r.Mode)
	}
	claims := &Claims{
		Player: r.Player,
		Date:   r.Date,
		Seed:   r.Seed,
		Score:  r.Score,
		Lines:  r.Lines,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Subject:  r.Player,
		},
	}
	key, err := signingKey(secret)
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign receipt: %w", err)
	}
	return signed, nil
}

// Verify checks a share code and returns its claims. Every failure wraps
// ErrInvalid.
func Verify(secret, code string) (*Claims, error) {
	key, err := signingKey(secret)
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(code, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.Date == "" || claims.Seed != seeded.DateToSeed(claims.Date) {
		return nil, fmt.Errorf("%w: seed does not match date %q", ErrInvalid, claims.Date)
	}
	if claims.Score < 0 || claims.Lines < 0 {
		return nil, fmt.Errorf("%w: negative totals", ErrInvalid)
	}
	return claims, nil
}
