package llm

import (
	"errors"
	"fmt"
)

// ErrAdapter matches every failure at the provider boundary
var ErrAdapter = errors.New("adapter error")

var (
	// ErrNoInvocation means the response carried no structured invocation
	ErrNoInvocation = errors.New("no structured invocation in response")

	// ErrMultipleInvocations means the response carried more than one invocation
	ErrMultipleInvocations = errors.New("multiple structured invocations in response")

	// ErrSchemaViolation means the payload does not conform to the declared schema
	ErrSchemaViolation = errors.New("payload violates schema")
)

// AdapterError wraps a network, quota, malformed-output or schema failure
type AdapterError struct {
	Provider string
	Op       string
	Err      error
}

func (e *AdapterError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrAdapter) true for every AdapterError
func (e *AdapterError) Is(target error) bool {
	return target == ErrAdapter
}

// AsAdapterError returns err as an AdapterError unless it already is one
func AsAdapterError(provider, op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *AdapterError
	if errors.As(err, &ae) {
		return err
	}
	return &AdapterError{Provider: provider, Op: op, Err: err}
}
