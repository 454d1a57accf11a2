package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNoToken         = errors.New("no auth token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrPaymentCanceled = errors.New("payment canceled by user")
)
