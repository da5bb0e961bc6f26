package models

import "fmt"

// ValidationError reports malformed input. Requests carrying one are
// rejected before any computation runs.
type ValidationError struct {
	Message string
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an unknown staff/project/role/assignment/ghost id.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateError reports an operation attempted against an entity whose
// lifecycle state no longer permits it, such as replacing a ghost staff
// record that has already been replaced or deleted.
type InvalidStateError struct {
	Resource string
	ID       string
	State    string
}

func NewInvalidStateError(resource, id, state string) *InvalidStateError {
	return &InvalidStateError{Resource: resource, ID: id, State: state}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is %s", e.Resource, e.ID, e.State)
}

// ConfigurationFault reports corrupted reference data, such as a cycle in
// the project ancestry. It is distinct from ValidationError: the request was
// well-formed, the stored data is not.
type ConfigurationFault struct {
	Message string
}

func NewConfigurationFault(format string, args ...interface{}) *ConfigurationFault {
	return &ConfigurationFault{Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationFault) Error() string {
	return e.Message
}
