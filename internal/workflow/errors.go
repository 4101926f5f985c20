package workflow

import "errors"

var (
	// ErrNoDraft is returned when editing or saving with no team open.
	ErrNoDraft = errors.New("no team is being edited")
	// ErrNoTarget is returned when executing a delete nobody confirmed.
	ErrNoTarget = errors.New("no user selected for deletion")
	// ErrOperationPending is returned while a save or delete is in flight.
	ErrOperationPending = errors.New("another operation is in progress")
	// ErrFieldsRequired is returned when a required form field is blank.
	ErrFieldsRequired = errors.New("All fields are required.")
)
