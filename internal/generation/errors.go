package generation

import (
	"errors"
	"fmt"

	"github.com/builddost/builddost-api/internal/prompts"
)

// ErrGenerationFailed matches every error returned by the generation client.
var ErrGenerationFailed = errors.New("generation failed")

var (
	errEmptyResponse = errors.New("model returned an empty response")
	errFilePath      = errors.New("model response has an unusable file path")
)

// Error reports a failed generation call or an unusable model response.
type Error struct {
	Mode prompts.Mode
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Mode, e.Err)
}

// Unwrap exposes both the failure class and the upstream cause.
func (e *Error) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// Message returns the upstream error message without the mode prefix.
func (e *Error) Message() string {
	if e.Err == nil {
		return ErrGenerationFailed.Error()
	}
	return e.Err.Error()
}

func failure(mode prompts.Mode, err error) error {
	return &Error{Mode: mode, Err: err}
}
