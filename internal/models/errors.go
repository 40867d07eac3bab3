package models

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NetworkError means the provider could not be reached or did not answer in time.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProviderError means the provider answered but refused or failed the request.
// Status is zero when the failure did not come with an HTTP status.
type ProviderError struct {
	Provider    string
	Status      int
	RateLimited bool
	Message     string
	Err         error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, msg)
	}
	return e.Provider + ": " + msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid flights data: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var ErrEmptyInput = errors.New("no flight offers to analyze")
