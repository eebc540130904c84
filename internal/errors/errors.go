// Package errors provides custom error types for the fincontrol API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrSessionExpired     = &AppError{Code: "SESSION_EXPIRED", Message: "Session has expired", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Account and sub-account errors.
var (
	ErrAccountNotFound        = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrSubAccountNotFound     = &AppError{Code: "SUBACCOUNT_NOT_FOUND", Message: "Sub-account not found", StatusCode: http.StatusNotFound}
	ErrSubAccountHasBalance   = &AppError{Code: "SUBACCOUNT_HAS_BALANCE", Message: "Sub-account still has a balance", StatusCode: http.StatusConflict}
	ErrSubAccountInUse        = &AppError{Code: "SUBACCOUNT_IN_USE", Message: "Sub-account is referenced by existing transfers", StatusCode: http.StatusConflict}
	ErrSubAccountReserved     = &AppError{Code: "SUBACCOUNT_RESERVED", Message: "The reserves sub-account cannot be deleted", StatusCode: http.StatusConflict}
	ErrInsufficientBalance    = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient balance for this month", StatusCode: http.StatusBadRequest}
	ErrSameSubAccountTransfer = &AppError{Code: "SAME_SUBACCOUNT_TRANSFER", Message: "Cannot transfer to the same sub-account", StatusCode: http.StatusBadRequest}
)

// Loan errors.
var (
	ErrLoanNotFound        = &AppError{Code: "LOAN_NOT_FOUND", Message: "Loan not found", StatusCode: http.StatusNotFound}
	ErrInstallmentNotFound = &AppError{Code: "INSTALLMENT_NOT_FOUND", Message: "Installment not found", StatusCode: http.StatusNotFound}
	ErrInstallmentSettled  = &AppError{Code: "INSTALLMENT_SETTLED", Message: "Installment has already been settled", StatusCode: http.StatusConflict}
)
