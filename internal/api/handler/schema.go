package handler

import "github.com/google/uuid"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Users ---

// Passwords are capped at 72 bytes, the most bcrypt will consider.
type registerUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// --- Comments ---

type createCommentRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	UserID      int64  `json:"user_id"     validate:"required,gt=0"`
}

type updateCommentRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	UserID      *int64  `json:"user_id"     validate:"omitempty,gt=0"`
}

// --- Ingredients ---

type createIngredientRequest struct {
	Name              string `json:"name"                validate:"required,max=100"`
	Description       string `json:"description"         validate:"max=2000"`
	ShelfLife         int    `json:"shelf_life"          validate:"required,gt=0"`
	UnitOfMeasurement string `json:"unit_of_measurement" validate:"required,max=50"`
}

type updateIngredientRequest struct {
	Name              *string `json:"name"                validate:"omitempty,min=1,max=100"`
	Description       *string `json:"description"         validate:"omitempty,max=2000"`
	ShelfLife         *int    `json:"shelf_life"          validate:"omitempty,gt=0"`
	UnitOfMeasurement *string `json:"unit_of_measurement" validate:"omitempty,min=1,max=50"`
}

// --- Roles ---

// A nil Permissions on update leaves the list untouched; [] clears it.
type createRoleRequest struct {
	Name        string      `json:"name"        validate:"required,max=100"`
	Permissions []uuid.UUID `json:"permissions" validate:"max=500"`
}

type updateRoleRequest struct {
	Name        *string     `json:"name"        validate:"omitempty,min=1,max=100"`
	Permissions []uuid.UUID `json:"permissions" validate:"omitempty,max=500"`
}
