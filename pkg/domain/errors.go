package domain

import "errors"

var (
	ErrUnknownKind  = errors.New("unknown record kind")
	ErrCast         = errors.New("cast failed")
	ErrCreateFailed = errors.New("create failed")
	ErrListFailed   = errors.New("list failed")
)
