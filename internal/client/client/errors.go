package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrUploadFailed  = errors.New("avatar upload failed")
	ErrUnexpectedRPC = errors.New("rpc error")
)
