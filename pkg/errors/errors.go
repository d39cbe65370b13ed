package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeNavigation represents page navigation and fetch errors
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeDelivery represents record delivery errors
	ErrorTypeDelivery ErrorType = "delivery"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Stage   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error must halt the run.
// Only configuration errors are fatal; everything else is
// recovered at page, card or record granularity.
func (e *ScrapeError) IsFatal() bool {
	return e.Type == ErrorTypeConfiguration
}

// New creates a new ScrapeError
func New(errType ErrorType, stage, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Stage:   stage,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// NewNavigation creates a new navigation error
func NewNavigation(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeNavigation, stage, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, stage, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(stage string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, stage, message, nil)
}

// NewDelivery creates a new delivery error
func NewDelivery(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeDelivery, stage, message, err)
}

// NewCache creates a new cache error
func NewCache(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, stage, message, err)
}

// NewValidation creates a new validation error
func NewValidation(stage, message string) *ScrapeError {
	return New(ErrorTypeValidation, stage, message, nil)
}
