package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrCommandNotFound    = errors.New("command not found")
	ErrInvalidMode        = errors.New("invalid mode")
)
