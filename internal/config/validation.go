package config

import (
	"regexp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	validLogLevels   = []string{"debug", "info", "warn", "error"}
	validLogFormats  = []string{"text", "json"}
	validCppVersions = []string{"98", "03", "11", "14", "17", "20", "23", "26"}

	cmakeVersionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
)

// @MX:ANCHOR: [AUTO] Every command validates its settings here before doing work.
// @MX:REASON: [AUTO] fan_in=3, Loader.Load, cli pre-run, tests
// Validate checks the settings for correctness and reports every problem at once.
func Validate(s *Settings) error {
	var errs []ValidationError

	if !slices.Contains(validLogLevels, s.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   KeyLogLevel,
			Message: "must be one of debug, info, warn, error",
			Value:   s.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !slices.Contains(validLogFormats, s.LogFormat) {
		errs = append(errs, ValidationError{
			Field:   KeyLogFormat,
			Message: "must be text or json",
			Value:   s.LogFormat,
			Wrapped: ErrInvalidConfig,
		})
	}
	if s.GitHost == "" {
		errs = append(errs, ValidationError{
			Field:   KeyGitHost,
			Message: "required field is empty",
			Wrapped: ErrInvalidConfig,
		})
	}
	if !slices.Contains(validCppVersions, s.CppVersion) {
		errs = append(errs, ValidationError{
			Field:   KeyCppVersion,
			Message: "unknown C++ standard",
			Value:   s.CppVersion,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !cmakeVersionPattern.MatchString(s.CmakeVersion) {
		errs = append(errs, ValidationError{
			Field:   KeyCmakeVersion,
			Message: "must look like 3.20 or 3.20.1",
			Value:   s.CmakeVersion,
			Wrapped: ErrInvalidConfig,
		})
	}
	for _, pattern := range s.SourceExclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, ValidationError{
				Field:   KeySourceExclude,
				Message: "invalid glob pattern",
				Value:   pattern,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
