package domain

import "errors"

// ErrNotFound is returned by repositories when the referenced row is absent.
var ErrNotFound = errors.New("resource not found")

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeySessionID CtxKey = "SessionID"
)
