package revenuecat

import (
	"errors"
	"fmt"
)

// ConfigError reports a precondition failure detected locally: a credential
// tier required by the requested operation is not configured, or an argument
// the remote API cannot do without is missing. No network call was made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "revenuecat: " + e.Reason
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// UnavailableError indicates the remote service could not be reached: the
// connection failed or the round trip exceeded the configured timeout.
// Callers that implement their own retry policy should key off this type.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("revenuecat: service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// RemoteError covers every other failure mode of a dispatched request: a
// non-2xx status, a malformed response body, or an unrecognized enum tag
// during decode. StatusCode and Body carry the original response when one
// was received.
type RemoteError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("revenuecat: API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("revenuecat: %v", e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsRemoteError reports whether err is a RemoteError.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
