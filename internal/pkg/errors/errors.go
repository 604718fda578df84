package errors

import "errors"

// Custom application errors
var (
	ErrPermissionDenied = errors.New("notification permission denied")          // Delivery platform not usable; user action required outside the app
	ErrReminderNotFound = errors.New("reminder not found")                      // Operation referenced a reminder id no longer present
	ErrStorage          = errors.New("storage operation failed")                // Persistence I/O failed; no partial write assumed
	ErrScheduling       = errors.New("failed to schedule notification trigger") // The platform rejected a specific trigger
	ErrValidation       = errors.New("invalid reminder input")                  // Request failed field validation
	ErrInternalServer   = errors.New("internal server error")                   // Generic internal error
)
