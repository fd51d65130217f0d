package errors

// Account creation errors.
var (
	ErrDuplicateAccountID = &DomainError{
		Code:    "DUPLICATE_ACCOUNT_ID",
		Message: "account id already exists",
	}
	ErrInvalidAccountID = &DomainError{
		Code:    "INVALID_ACCOUNT_ID",
		Message: "account id must not be empty",
	}
	ErrNegativeInitialBalance = &DomainError{
		Code:    "NEGATIVE_INITIAL_BALANCE",
		Message: "initial balance must not be negative",
	}
)
