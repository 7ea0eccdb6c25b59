package workflows

import "errors"

var (
	// ErrWorkflowNotFound is returned when a workflow is not registered
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrInvalidRequest is returned when the request is invalid
	ErrInvalidRequest = errors.New("invalid workflow request")

	// ErrDecode is returned when a source image cannot be decoded
	ErrDecode = errors.New("image decode failed")
)
