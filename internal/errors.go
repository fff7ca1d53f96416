package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey aborts mounting; nothing is rendered.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrEmptyMessage is returned by Send for empty or whitespace-only input.
	ErrEmptyMessage = errors.New("empty message")
	// ErrSendInFlight is returned by Send while another exchange is running.
	ErrSendInFlight = errors.New("a message is already being sent")
)

// StorageError represents errors accessing the widget storage database
type StorageError struct {
	Path string
	Op   string // "open", "migrate", "get", "set", "list"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding a response body
type ParseError struct {
	Source string // "config", "chat"
	Key    string // request URL
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError represents a failed widget config fetch
type ConfigError struct {
	URL    string
	Op     string // "request", "status", "decode"
	Status int
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("config error: %s %s (status %d): %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("config error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ChatError represents a failed chat exchange
type ChatError struct {
	URL    string
	Op     string // "encode", "request", "status", "decode", "validate"
	Status int
	Err    error
}

func (e *ChatError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("chat error: %s %s (status %d): %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("chat error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

// RenderError represents errors writing rendered widget output
type RenderError struct {
	Format string
	Path   string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
