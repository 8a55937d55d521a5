package config

import (
	"fmt"

	"github.com/gookit/validate"
)

// Validator checks a loaded Config section by section using the
// validate tags on the config structs.
type Validator struct {
	conf *Config
}

func NewValidator(conf *Config) *Validator {
	return &Validator{conf: conf}
}

// Validate returns the first validation failure across all sections.
func (cv *Validator) Validate() error {
	sections := []struct {
		name  string
		value any
	}{
		{"storage", &cv.conf.Storage},
		{"backup", &cv.conf.Backup},
		{"archive", &cv.conf.Archive},
		{"time", &cv.conf.Time},
		{"logger", &cv.conf.Logger},
	}
	for _, section := range sections {
		v := validate.Struct(section.value)
		if !v.Validate() {
			return fmt.Errorf("invalid %s config: %s", section.name, v.Errors.One())
		}
	}
	return nil
}
