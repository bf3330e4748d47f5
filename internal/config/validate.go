package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks c against its struct tags and the custom rules below.
func Validate(c *Config) error {
	v := validator.New()

	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("engine", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "difflib", "dmp":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("backendmode", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case BackendLocal, BackendHTTP, BackendSpawn:
			return true
		}
		return false
	})

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Backend.Mode == BackendHTTP && c.Backend.URL == "" {
		return errors.New("invalid config: backend.url is required when backend.mode is http")
	}
	return nil
}
