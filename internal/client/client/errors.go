package client

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRequestFailed      = errors.New("request failed")
)

// DetailNoIdentity is reported when the protected endpoint accepts the token
// but does not say whom it belongs to.
const DetailNoIdentity = "response carries no user"

// ServiceError is a failed exchange with the auth service. Kind is one of the
// sentinel errors above. Status is 0 when no response was received.
type ServiceError struct {
	Kind   error
	Status int
	Detail string
	Err    error
}

func (e *ServiceError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%v: status %d", e.Kind, e.Status)
	default:
		return e.Kind.Error()
	}
}

func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Detail returns the message the service attached to err, or "".
func Detail(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

// IsTransient reports whether err is a transport-level failure rather than a
// decision made by the service.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}
