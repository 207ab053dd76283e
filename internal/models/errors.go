package models

import "fmt"

// InputError reports a malformed response vector. It is raised before any
// scoring starts and is never recoverable into a default.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ConfigError reports an unusable piece of scoring configuration, such as a
// trait with no mapped questions or a weight table missing required keys.
// It is fatal for the framework it belongs to but must not abort the rest
// of the profile.
type ConfigError struct {
	Subject string // trait, framework, or dimension name
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %q: %s", e.Subject, e.Reason)
}
