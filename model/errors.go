package model

import (
	"errors"
	"fmt"
)

// ValidationError reports a bad or missing request field. The request is
// rejected before any dataset is read.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request field %q: %s", e.Field, e.Reason)
}

// ConfigurationError reports an unrecognized report type, time period or
// focus area. Fatal to the request.
type ConfigurationError struct {
	Kind  string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// DataSourceError reports an unreadable or corrupt dataset. Fatal to the
// request; no partial or degraded report is produced.
type DataSourceError struct {
	Dataset string
	Err     error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("dataset %s unavailable: %v", e.Dataset, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// RenderError reports a failed PDF rasterization. Fatal and surfaced to the
// caller.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render failed: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// DeliveryError reports a failed email transmission. It never invalidates an
// already-produced PDF artifact and is surfaced as a warning, not a failure.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ErrEnrichmentUnavailable signals that the insight provider failed or timed
// out. Recovered locally with placeholder text, never surfaced as a failure.
var ErrEnrichmentUnavailable = errors.New("insight provider unavailable")

// IsRequestError reports whether err should map to an HTTP 4xx response.
func IsRequestError(err error) bool {
	var ve *ValidationError
	var ce *ConfigurationError
	return errors.As(err, &ve) || errors.As(err, &ce)
}
