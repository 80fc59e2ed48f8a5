package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks cfg against its struct tags via go-playground/validator,
// tag-driven with one error per invalid field joined into a single error.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	for i, l := range cfg.Listeners {
		if l.Implicit && l.TLS == nil {
			return fmt.Errorf("config validation: listener %d (%s): implicit FTPS requires tls", i, l.Address)
		}
	}
	return nil
}
