package service

import "errors"

// ErrNotFound indicates the requested resource was not found.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput indicates a request failed domain validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmailTaken indicates a registration used an email that already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials indicates a login with an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUnauthorized indicates a missing, invalid or revoked access token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrOutOfStock indicates an order for a product with no stock left.
var ErrOutOfStock = errors.New("product out of stock")

// ErrInUse indicates a product that cannot be deleted because orders reference it.
var ErrInUse = errors.New("resource is referenced by other records")

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal error")

// ErrInternalQueue indicates an internal queue error.
var ErrInternalQueue = errors.New("internal queue error")
