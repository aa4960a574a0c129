package models

import (
	"time"
)

// User is a registered loyalty member. Points holds the seed balance a user
// starts with; once the user has ledger history the ledger is authoritative
// and Points is never consulted again.
type User struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	FirstName       string    `gorm:"not null" json:"firstName"`
	LastName        string    `gorm:"not null" json:"lastName"`
	Phone           string    `gorm:"uniqueIndex;not null" json:"phone"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	MemberSince     time.Time `json:"memberSince"`
	MembershipLevel string    `gorm:"default:'Bronze'" json:"membershipLevel"`
	Points          int64     `gorm:"default:0" json:"points"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateUserInput is the payload for registering a new member.
type CreateUserInput struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Phone           string `json:"phone" validate:"required,min=7,max=16"`
	Email           string `json:"email" validate:"required,email"`
	MembershipLevel string `json:"membershipLevel"`
	Points          int64  `json:"points" validate:"gte=0"`
}

// UpdateUserInput carries optional profile updates. Points is absent on
// purpose: balances move only through the ledger.
type UpdateUserInput struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Phone           *string `json:"phone" validate:"omitempty,min=7,max=16"`
	Email           *string `json:"email" validate:"omitempty,email"`
	MembershipLevel *string `json:"membershipLevel"`
}
