// Package password generates random passwords and scores their
// strength for the account editor and the genpass command.
package password

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"

	// DefaultLength is used when no length is requested.
	DefaultLength = 16
)

// Options selects which character classes a generated password draws
// from. The zero value enables everything.
type Options struct {
	NoUpper   bool
	NoDigits  bool
	NoSpecial bool
}

// Generate returns a random password of the given length. Lowercase
// letters are always included; an all-excluded option set falls back to
// lowercase plus digits.
func Generate(length int, opts Options) string {
	if length <= 0 {
		length = DefaultLength
	}

	charset := lowerChars
	if !opts.NoUpper {
		charset += upperChars
	}
	if !opts.NoDigits {
		charset += digitChars
	}
	if !opts.NoSpecial {
		charset += specialChars
	}

	pass := make([]byte, length)
	for i := range pass {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		pass[i] = charset[num.Int64()]
	}
	return string(pass)
}

// Level represents overall password strength.
type Level int

const (
	LevelEmpty Level = iota
	LevelWeak
	LevelFair
	LevelGood
	LevelStrong
)

var commonWords = []string{
	"password", "123456", "qwerty", "admin", "letmein", "welcome", "monkey", "master",
}

// Strength scores a password from 0 to 100 and maps the score to a
// level with a short label.
func Strength(password string) (score int, level Level, label string) {
	if password == "" {
		return 0, LevelEmpty, ""
	}

	n := len(password)
	switch {
	case n >= 20:
		score += 40
	case n >= 16:
		score += 35
	case n >= 12:
		score += 25
	case n >= 8:
		score += 15
	case n >= 6:
		score += 5
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	for _, has := range []bool{hasLower, hasUpper, hasDigit, hasSpecial} {
		if has {
			score += 10
		}
	}

	unique := make(map[rune]bool)
	for _, r := range password {
		unique[r] = true
	}
	switch ratio := float64(len(unique)) / float64(n); {
	case ratio >= 0.9:
		score += 20
	case ratio >= 0.7:
		score += 15
	case ratio >= 0.5:
		score += 10
	case ratio >= 0.3:
		score += 5
	}

	lower := strings.ToLower(password)
	for _, w := range commonWords {
		if strings.Contains(lower, w) {
			score -= 30
			break
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score >= 75:
		return score, LevelStrong, "strong"
	case score >= 50:
		return score, LevelGood, "good"
	case score >= 25:
		return score, LevelFair, "fair"
	default:
		return score, LevelWeak, "weak"
	}
}
