package services

import (
	"errors"
	"fmt"
)

// Business-rule errors. Handlers map these onto HTTP statuses; anything not
// listed here is treated as an unexpected store failure and surfaced as a
// generic server error.
var (
	ErrNotProjectMember  = errors.New("you are not a member of this project")
	ErrWrongTeacher      = errors.New("invalid teacher for this project")
	ErrTimeConflict      = errors.New("time slot conflicts with existing appointment")
	ErrAppointmentGone   = errors.New("appointment not found")
	ErrProjectGone       = errors.New("project not found")
	ErrStudentGone       = errors.New("student not found")
	ErrTeacherStatus     = errors.New("invalid status for teacher")
	ErrStudentStatus     = errors.New("students can only cancel appointments")
	ErrTerminalStatus    = errors.New("appointment status can no longer change")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrNotificationGone  = errors.New("notification not found")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrAccountDisabled   = errors.New("account is disabled")
)

// InputError marks a request validation failure detected inside a service,
// such as a malformed time or date field.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }

func badInput(format string, args ...interface{}) error {
	return &InputError{Err: fmt.Errorf(format, args...)}
}
