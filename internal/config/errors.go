package config

import "fmt"

// ConfigurationError is fatal at startup: the process refuses to run.
type ConfigurationError struct {
	Key     string
	Message string
}

func NewConfigurationError(key, message string) *ConfigurationError {
	return &ConfigurationError{Key: key, Message: message}
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Message)
}
