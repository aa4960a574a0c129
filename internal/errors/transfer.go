package errors

var (
	ErrInsufficientPoints = &DomainError{
		Code:    "INSUFFICIENT_POINTS",
		Message: "insufficient points",
	}
	ErrSameUser = &DomainError{
		Code:    "SAME_USER",
		Message: "cannot transfer to the same user",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than 0",
	}
	ErrNoteTooLong = &DomainError{
		Code:    "NOTE_TOO_LONG",
		Message: "note cannot exceed 512 characters",
	}
	ErrInvalidUserID = &DomainError{
		Code:    "INVALID_USER_ID",
		Message: "fromUserId and toUserId are required",
	}
	ErrInvalidPage = &DomainError{
		Code:    "INVALID_PAGE",
		Message: "page must be greater than 0",
	}
	ErrInvalidPageSize = &DomainError{
		Code:    "INVALID_PAGE_SIZE",
		Message: "page size must be between 1 and 200",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrTransferNotFound = &DomainError{
		Code:    "TRANSFER_NOT_FOUND",
		Message: "transfer not found",
	}
)
