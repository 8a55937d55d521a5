// Package totp generates RFC 6238 one-time codes for stored account
// secrets, using a network-corrected clock so codes and countdowns stay
// consistent under local clock skew.
package totp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

// Period is the TOTP time-step in seconds.
const Period = 30

// Digits is the number of digits in a generated code.
const Digits = 6

// ErrInvalidSecret marks secrets that are empty or fail code generation.
var ErrInvalidSecret = errors.New("invalid 2fa secret")

// Clock supplies the reference time for code generation.
type Clock interface {
	Now() time.Time
}

// LocalClock is a Clock backed directly by the system clock.
type LocalClock struct{}

func (LocalClock) Now() time.Time { return time.Now() }

// Generator produces TOTP codes from base32 secrets.
type Generator struct {
	clock Clock
	log   *zap.Logger
}

// NewGenerator constructs a Generator. A nil clock falls back to the
// system clock.
func NewGenerator(clock Clock, log *zap.Logger) *Generator {
	if clock == nil {
		clock = LocalClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{clock: clock, log: log}
}

// NormalizeSecret strips whitespace and separator dashes and uppercases,
// matching the base32 alphabet the underlying algorithm expects.
func NormalizeSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	secret = strings.ReplaceAll(secret, " ", "")
	secret = strings.ReplaceAll(secret, "-", "")
	return strings.ToUpper(secret)
}

// Generate returns the 6-digit code for the current 30-second window.
func (g *Generator) Generate(secret string) (string, error) {
	return g.GenerateAt(secret, g.clock.Now())
}

// GenerateAt returns the code for the window containing t.
func (g *Generator) GenerateAt(secret string, t time.Time) (string, error) {
	clean := NormalizeSecret(secret)
	if clean == "" {
		return "", fmt.Errorf("%w: empty secret", ErrInvalidSecret)
	}
	code, err := totp.GenerateCode(clean, t)
	if err != nil {
		g.log.Error("totp generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return code, nil
}

// GenerateSafe is the non-throwing variant: it returns ok=false instead
// of an error for malformed secrets.
func (g *Generator) GenerateSafe(secret string) (string, bool) {
	code, err := g.Generate(secret)
	if err != nil {
		return "", false
	}
	return code, true
}

// Remaining returns the seconds left in the current window, in [1, 30].
func (g *Generator) Remaining() int {
	elapsed := int(g.clock.Now().Unix() % Period)
	remaining := Period - elapsed
	if remaining <= 0 {
		return Period
	}
	return remaining
}

// Verify checks a code against the secret with one window of skew
// tolerance for clock drift.
func (g *Generator) Verify(secret, code string) bool {
	clean := NormalizeSecret(secret)
	if clean == "" || code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, clean, g.clock.Now(), totp.ValidateOpts{
		Period:    Period,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		g.log.Warn("totp verification failed", zap.Error(err))
		return false
	}
	return ok
}

// IsValidSecret reports whether a secret is usable: non-empty, base32
// alphabet only, at least 16 characters, and a trial generation succeeds.
func (g *Generator) IsValidSecret(secret string) bool {
	clean := NormalizeSecret(secret)
	if clean == "" {
		return false
	}
	for _, c := range clean {
		if !((c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7') || c == '=') {
			return false
		}
	}
	if len(clean) < 16 {
		return false
	}
	_, err := g.GenerateAt(clean, g.clock.Now())
	return err == nil
}
