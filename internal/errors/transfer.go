package errors

// Transfer errors.
var (
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "Account does not exist",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "Account transfer amount is not valid. Please try with valid amount(Positive)",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "Sufficient balance is not available in account",
	}
	ErrSameAccountTransfer = &DomainError{
		Code:    "SAME_ACCOUNT_TRANSFER",
		Message: "sender and receiver accounts cannot be the same",
	}
	ErrTimeout = &DomainError{
		Code:    "LOCK_TIMEOUT",
		Message: "timed out waiting for account lock",
	}
)
