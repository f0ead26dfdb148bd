package discussion

import "errors"

var (
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrReplyNotFound      = errors.New("reply not found")
	ErrDiscussionLocked   = errors.New("discussion is locked")
	ErrNotDiscussionOwner = errors.New("only the discussion author may do this")
	ErrInvalidCategory    = errors.New("invalid discussion category")
)
