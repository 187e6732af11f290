package domain

import "errors"

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("already exists")
var ErrInvalidInput = errors.New("invalid input")

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrExpiredCredential = errors.New("token expired")
var ErrMalformedCredential = errors.New("invalid token")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrTooManyAttempts = errors.New("too many login attempts")
