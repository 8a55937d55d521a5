// Package importer converts raw pasted or file-sourced text into
// candidate account records. Parsing is best effort: malformed lines are
// dropped, never rejected as a batch failure.
package importer

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// Separators in detection priority order.
var Separators = []string{"----", "---", "--", "||", "|", "\t", ","}

// DefaultSeparator is used when no separator qualifies.
const DefaultSeparator = "----"

// commentMarker prefixes lines that are skipped entirely.
const commentMarker = "#"

const (
	sampleLines   = 5
	matchFraction = 0.6
)

// Importer parses bulk account text.
type Importer struct {
	log *zap.Logger
}

// New constructs an Importer.
func New(log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{log: log}
}

// DetectSeparator samples up to 5 non-blank lines and returns the first
// separator (in priority order) that splits at least 60% of them into
// two or more fields. Falls back to the default when none qualifies.
func (im *Importer) DetectSeparator(lines []string) string {
	var sample []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) >= sampleLines {
			break
		}
	}
	if len(sample) == 0 {
		return DefaultSeparator
	}

	for _, sep := range Separators {
		matches := 0
		for _, line := range sample {
			if len(strings.Split(line, sep)) >= 2 {
				matches++
			}
		}
		if float64(matches) >= float64(len(sample))*matchFraction {
			im.log.Info("detected separator", zap.String("separator", sep))
			return sep
		}
	}

	im.log.Info("no separator detected, using default")
	return DefaultSeparator
}

// ParseLine splits one line into an account. Field order is fixed:
// email, password, backup email, secret; trailing fields are optional.
// Blank and comment lines yield ok=false, not an error.
func (im *Importer) ParseLine(line, separator string) (model.Account, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentMarker) {
		return model.Account{}, false
	}
	if separator == "" {
		separator = im.DetectSeparator([]string{line})
	}

	parts := strings.Split(line, separator)
	email := strings.TrimSpace(parts[0])
	if email == "" {
		return model.Account{}, false
	}

	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	return model.NewAccount(email, field(1), field(2), field(3)), true
}

// ParseText parses multi-line text into accounts, auto-detecting the
// separator when none is given. Records carry an import timestamp but no
// id; ids are assigned only on insertion into live state.
func (im *Importer) ParseText(text, separator string) []model.Account {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if separator == "" {
		separator = im.DetectSeparator(lines)
	}

	accounts := make([]model.Account, 0, len(lines))
	for _, line := range lines {
		if a, ok := im.ParseLine(line, separator); ok {
			accounts = append(accounts, a)
		}
	}

	im.log.Info("parsed accounts from text", zap.Int("count", len(accounts)))
	return accounts
}

// ParseFile reads a file and parses it like ParseText.
func (im *Importer) ParseFile(path, separator string) ([]model.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	accounts := im.ParseText(string(data), separator)
	im.log.Info("parsed accounts from file",
		zap.String("path", path), zap.Int("count", len(accounts)))
	return accounts, nil
}

// ValidateEmail is a cheap plausibility check used by import previews,
// not a full address validator.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) < 5 {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".")
}
