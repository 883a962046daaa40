package nexus

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Common error codes
const (
	ErrCodeInvalidType  = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
)

// ConfigError represents domain-specific configuration errors
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ConfigError) Unwrap() error {
	return e.Cause
}

// Validatable lets config sections carry their own invariants.
type Validatable interface {
	Validate() error
}

// LoaderOptions contains configuration for the loader
type LoaderOptions struct {
	// FileName is an optional config file (YAML/JSON) read before the
	// environment. Missing files are only an error when Required is set.
	FileName string
	Required bool
}

// LoaderOption is a functional option for configuring the loader
type LoaderOption func(*LoaderOptions)

// WithFileName sets the configuration file to read.
func WithFileName(name string) LoaderOption {
	return func(o *LoaderOptions) { o.FileName = name }
}

// WithRequiredFile makes a missing config file fatal.
func WithRequiredFile() LoaderOption {
	return func(o *LoaderOptions) { o.Required = true }
}

// Loader populates a config struct from defaults, an optional file, and
// the environment, then validates the result. Precedence is
// environment > file > `default` struct tags.
type Loader struct {
	options  LoaderOptions
	validate *validator.Validate
}

// NewLoader returns a loader with the given options applied.
func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return &Loader{options: options, validate: validator.New()}
}

// Load fills target, which must be a non-nil pointer to a struct.
func (l *Loader) Load(target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ConfigError{Code: ErrCodeInvalidType, Message: "target must be a non-nil struct pointer"}
	}

	if l.options.FileName != "" {
		if _, err := os.Stat(l.options.FileName); err == nil {
			if err := cleanenv.ReadConfig(l.options.FileName, target); err != nil {
				return ConfigError{Code: ErrCodeEnvironment, Message: "failed to read config file", Cause: err}
			}
		} else if l.options.Required {
			return ConfigError{Code: ErrCodeFileNotFound, Message: "config file not found: " + l.options.FileName, Cause: err}
		}
	}

	if err := cleanenv.ReadEnv(target); err != nil {
		return ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment", Cause: err}
	}

	defaults := reflect.New(rv.Elem().Type())
	fillDefaults(defaults.Elem())
	if err := mergo.Merge(target, defaults.Interface()); err != nil {
		return ConfigError{Code: ErrCodeMerge, Message: "failed to merge defaults", Cause: err}
	}

	if err := l.validate.Struct(target); err != nil {
		return ConfigError{Code: ErrCodeValidation, Message: "config validation failed", Cause: err}
	}

	if v, ok := target.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return ConfigError{Code: ErrCodeValidation, Message: err.Error(), Cause: err}
		}
	}

	return nil
}

// fillDefaults walks a zero struct value and sets fields from their
// `default` tags, recursing into nested structs.
func fillDefaults(v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			fillDefaults(field)
			continue
		}

		tag, ok := t.Field(i).Tag.Lookup("default")
		if !ok {
			continue
		}
		setFromString(field, tag)
	}
}

func setFromString(field reflect.Value, raw string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			if d, err := time.ParseDuration(raw); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			field.SetInt(n)
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			field.SetFloat(f)
		}
	default:
	}
}
