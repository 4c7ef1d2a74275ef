// Package errs provides standardized error types for the lastmile application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The error types fall into four families the request layer renders differently:
//   - not found: ObjectNotFoundError
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     InvalidStateTransitionError (see IsValidation)
//   - conflict: ConflictError, for resources held by another route or a settled payment
//   - authorization mismatch: PermissionDeniedError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on wrapped chains
package errs
