// Package validation validates request payloads and maps struct-tag failures
// onto the coded domain errors the transport layer understands.
package validation

import (
	stderrors "errors"

	"pointbank/internal/errors"
	"pointbank/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateCreateTransfer checks a transfer request against the business
// rules: amount > 0, distinct users, note at most 512 characters.
func ValidateCreateTransfer(req *models.CreateTransferRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.ErrInvalidAmount
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "FromUserID", "ToUserID":
			if fe.Tag() == "nefield" {
				return errors.ErrSameUser
			}
			return errors.ErrInvalidUserID
		case "Amount":
			return errors.ErrInvalidAmount
		case "Note":
			return errors.ErrNoteTooLong
		}
	}
	return errors.ErrInvalidAmount
}

// ValidatePagination checks 1-based page bounds and the [1,200] page size
// window used by list endpoints.
func ValidatePagination(page, pageSize int) error {
	if page < 1 {
		return errors.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 200 {
		return errors.ErrInvalidPageSize
	}
	return nil
}

// ValidateCreateUser checks a member registration payload.
func ValidateCreateUser(input *models.CreateUserInput) error {
	return validate.Struct(input)
}

// ValidateUpdateUser checks a profile update payload.
func ValidateUpdateUser(input *models.UpdateUserInput) error {
	return validate.Struct(input)
}
