package dialogflow

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const defaultLanguageCode = "en"

// Config is everything the client needs to reach one agent. It is validated once by New.
type Config struct {
	ProjectID    string `key:"project_id" validate:"required"`
	Credential   string `key:"credential" validate:"required"`
	LanguageCode string `key:"language_code" validate:"omitempty,min=2"`
	Endpoint     string `key:"endpoint" validate:"omitempty,url"`
}

// ConfigFromEnv reads the agent settings from the process environment.
func ConfigFromEnv() Config {
	return Config{
		ProjectID:    os.Getenv("DIALOGFLOW_PROJECT_ID"),
		Credential:   os.Getenv("DIALOGFLOW_CREDENTIAL"),
		LanguageCode: os.Getenv("DIALOGFLOW_LANGUAGE_CODE"),
		Endpoint:     os.Getenv("DIALOGFLOW_ENDPOINT"),
	}
}

// ConfigError lists the config keys that failed validation.
type ConfigError struct {
	Fields []string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dialogflow: invalid config (%s): %v", strings.Join(e.Fields, ", "), e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("key")
	})
	return v
}

func (c Config) withDefaults() Config {
	if c.LanguageCode == "" {
		c.LanguageCode = defaultLanguageCode
	}
	return c
}

// Validate checks required keys and formats and returns a *ConfigError on failure.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigError{Err: err}
	}

	fields := make([]string, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
	}

	return &ConfigError{Fields: fields, Err: errors.New(strings.Join(msgs, "; "))}
}
