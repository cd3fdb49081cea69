package services

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("already exists")
	ErrSoldOut       = errors.New("out of stock")
	ErrBadTransition = errors.New("illegal status transition")
)
