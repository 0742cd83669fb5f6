// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// UserName is email-shaped and doubles as the verification mail recipient.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id"`

	// UserName is the unique, email-shaped login of the user.
	UserName string `json:"user_name" validate:"required,email"`

	// Password carries the raw password on registration and login requests only.
	// It is never serialized back to the caller.
	Password string `json:"password,omitempty" validate:"required,min=6"`

	// PasswordHash is the irreversible bcrypt digest stored in the database.
	PasswordHash string `json:"-"`

	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=64"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=64"`
	Location  string `json:"location,omitempty" validate:"omitempty,max=128"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,numeric,max=15"`

	// IsVerified flips to true exactly once, after the email verification
	// token is redeemed.
	IsVerified bool `json:"is_verified"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the login request body.
type Credentials struct {
	UserName string `json:"user_name" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
