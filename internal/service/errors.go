package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrSessionExpired     = &sessionError{msg: "session expired"}
	ErrForbidden          = errors.New("forbidden")
	ErrStoryNotFound      = errors.New("story not found")
	ErrDuplicateAccount   = errors.New("user with this email already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidRewriteMode = errors.New("invalid optimization type")
	ErrRewriteFailed      = errors.New("error optimizing story")
)

// sessionError es una variante de ErrUnauthenticated con mensaje propio.
type sessionError struct {
	msg string
}

func (e *sessionError) Error() string { return e.msg }

func (e *sessionError) Is(target error) bool {
	return target == ErrUnauthenticated
}

// ValidationError enumera los campos requeridos que faltan o son invalidos.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "required"
	}
	return strings.Join(e.Fields, ", ") + ": " + reason
}

func missingFields(pairs ...string) *ValidationError {
	var fields []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			fields = append(fields, pairs[i])
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
