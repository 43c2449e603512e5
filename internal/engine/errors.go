// Package engine holds the pure core of the assignment lifecycle: the error
// taxonomy, the status resolver, and the filter/search functions. Nothing in
// this package stores state or touches I/O.
package engine

import (
	"errors"
	"fmt"
)

// Validation reasons.
const (
	ReasonMissingTitle           = "missing_title"
	ReasonMissingModuleOrTopic   = "missing_module_or_topic"
	ReasonInvalidModuleTopicPair = "invalid_module_topic_pair"
	ReasonEmptyRecipientList     = "empty_recipient_list"
	ReasonMissingGrade           = "missing_grade"
)

// Invalid transition reasons.
const (
	ReasonAlreadyCompleted = "already_completed"
	ReasonAlreadyGraded    = "already_graded"
	ReasonNotSubmitted     = "not_submitted"
)

// ValidationError reports bad or missing input. Always recoverable; the
// caller re-prompts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NotFoundError reports a referenced entity that does not exist. Recoverable;
// the caller refreshes its view.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// InvalidTransitionError reports an operation attempted on an entity that is
// not in the required state. A safety net, not the primary UX guard.
type InvalidTransitionError struct {
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s", e.Reason)
}

// NewValidationError builds a ValidationError with the given reason code.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// NewNotFoundError builds a NotFoundError for the given entity and id.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewInvalidTransitionError builds an InvalidTransitionError with the given
// reason code.
func NewInvalidTransitionError(reason string) error {
	return &InvalidTransitionError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// Reason extracts the reason code carried by a validation or transition
// error, or "" for any other error.
func Reason(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Reason
	}
	var transition *InvalidTransitionError
	if errors.As(err, &transition) {
		return transition.Reason
	}
	return ""
}
