// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrPrerequisiteMissing indicates a required artifact (CA, manifest)
	// is absent from the store.
	ErrPrerequisiteMissing = errors.New("fault: prerequisite missing")

	// ErrInvalidInput indicates a caller-supplied value (common name, SAN
	// list, validity configuration) is empty or malformed.
	ErrInvalidInput = errors.New("fault: invalid input")

	// ErrEngineFailure indicates the underlying PKI engine could not
	// complete a key generation, CSR, signing, or export operation.
	ErrEngineFailure = errors.New("fault: PKI engine failure")

	// ErrStoreIO indicates a filesystem read, write, or archive operation
	// against the certificate store failed.
	ErrStoreIO = errors.New("fault: store I/O failure")
)

// Prerequisite wraps a descriptive message into the prerequisite-missing kind.
// The remediation hint tells the operator how to satisfy the precondition.
func Prerequisite(remediation, format string, v ...any) error {
	return &classified{
		kind:        ErrPrerequisiteMissing,
		msg:         fmt.Sprintf(format, v...),
		remediation: remediation,
	}
}

// Invalid wraps a descriptive message into the invalid-input kind.
func Invalid(format string, v ...any) error {
	return &classified{kind: ErrInvalidInput, msg: fmt.Sprintf(format, v...)}
}

// Engine wraps an underlying PKI engine error into the engine-failure kind.
func Engine(err error, format string, v ...any) error {
	return &classified{kind: ErrEngineFailure, msg: fmt.Sprintf(format, v...), cause: err}
}

// StoreIO wraps an underlying filesystem error into the store-I/O kind.
func StoreIO(err error, format string, v ...any) error {
	return &classified{kind: ErrStoreIO, msg: fmt.Sprintf(format, v...), cause: err}
}

// classified is an error carrying exactly one taxonomy kind, an optional
// underlying cause, and an optional remediation hint for the operator.
type classified struct {
	kind        error
	msg         string
	remediation string
	cause       error
}

func (c *classified) Error() string {
	if c.cause != nil {
		return fmt.Sprintf("%s: %v", c.msg, c.cause)
	}
	return c.msg
}

// Is reports whether target matches this error's taxonomy kind, so
// errors.Is(err, fault.ErrEngineFailure) classifies wrapped errors.
func (c *classified) Is(target error) bool { return target == c.kind }

// Unwrap exposes the underlying cause for errors.Is/errors.As traversal.
func (c *classified) Unwrap() error { return c.cause }

// Remediation returns the operator hint attached to err, if any.
// It walks the error chain so wrapped faults keep their hint.
func Remediation(err error) string {
	var c *classified
	if errors.As(err, &c) {
		return c.remediation
	}
	return ""
}
