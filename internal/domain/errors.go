package domain

import "fmt"

type ConfigErrorCode string

const (
	ConfigErrInvalidLength    ConfigErrorCode = "INVALID_LENGTH"
	ConfigErrTimelineTooShort ConfigErrorCode = "TIMELINE_TOO_SHORT"
	ConfigErrInvalidTimeline  ConfigErrorCode = "INVALID_TIMELINE"
	ConfigErrDuplicateItem    ConfigErrorCode = "DUPLICATE_ITEM"
	ConfigErrUnknownReference ConfigErrorCode = "UNKNOWN_REFERENCE"
	ConfigErrInvalidBound     ConfigErrorCode = "INVALID_BOUND"
	ConfigErrUnknownEncoding  ConfigErrorCode = "UNKNOWN_ENCODING"
)

// ConfigError is raised while a model is being built, before any solve is
// attempted. It is fatal to that build.
type ConfigError struct {
	Code    ConfigErrorCode
	Message string
}

func (e *ConfigError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func configErrorf(code ConfigErrorCode, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewUnknownReferenceError reports a side constraint that names an item or
// position the instance does not define.
func NewUnknownReferenceError(kind, id string) *ConfigError {
	return configErrorf(ConfigErrUnknownReference, "unknown %s %q", kind, id)
}
