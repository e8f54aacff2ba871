package ai

import "fmt"

// ConfigurationError means the provider cannot be constructed: unknown
// provider name or missing credentials. It is detected at startup, before
// any request is made.
type ConfigurationError struct {
	Provider Provider
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ai: %s configuration: %s", e.Provider, e.Reason)
}

// TransportError wraps a failed provider round trip: network errors,
// timeouts, or any non-2xx status. Body holds the raw error payload when
// the provider returned one.
type TransportError struct {
	Provider Provider
	Status   int
	Body     string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai: %s request failed: status %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("ai: %s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the provider answered 2xx but the payload
// did not contain a reply in the documented shape.
type MalformedResponseError struct {
	Provider Provider
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("ai: %s returned malformed response: %s", e.Provider, e.Reason)
}
