package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrConflict indicates a lost update on a concurrently modified resource.
// Callers must retry the whole operation; conflicting writes are never merged.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrInvalidTransition indicates an illegal payroll run state transition,
// such as mutating an approved run or approving a run twice.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
