package util

import (
	"errors"
	"net/http"
)

// Error kinds shared by services and controllers. Services return them
// (or errors unwrapping to them), controllers map them with StatusOf.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

var (
	ErrEmailRegistered    = newKind(ErrConflict, "email already in use")
	ErrAlreadyEnrolled    = newKind(ErrConflict, "already enrolled in this course")
	ErrInvalidCredentials = newKind(ErrUnauthenticated, "invalid credentials")
	ErrTokenRevoked       = newKind(ErrUnauthenticated, "token revoked")
	ErrCourseNotFound     = newKind(ErrNotFound, "course not found")
	ErrLessonNotFound     = newKind(ErrNotFound, "lesson not found")
	ErrBatchNotFound      = newKind(ErrNotFound, "batch not found")
	ErrEnrollmentNotFound = newKind(ErrNotFound, "enrollment not found")
	ErrNotEnrolled        = newKind(ErrNotFound, "you are not enrolled in this course yet")
	ErrQuizNotFound       = newKind(ErrNotFound, "quiz not found for this lesson")
	ErrSubmissionNotFound = newKind(ErrNotFound, "submission not found")
	ErrUserNotFound       = newKind(ErrNotFound, "user not found")
)

// StatusOf returns the HTTP status for err, 500 when it has no known kind.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Invalid builds an ErrInvalidInput carrying a user facing message.
func Invalid(msg string) error {
	return newKind(ErrInvalidInput, msg)
}

type kindError struct {
	kind error
	msg  string
}

func newKind(kind error, msg string) *kindError {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
