package models

import "errors"

var (
	ErrAlreadyLiked      = errors.New("post already liked")
	ErrNotLiked          = errors.New("post has not yet been liked")
	ErrCommentNotFound   = errors.New("comment does not exist")
	ErrNotCommentAuthor  = errors.New("user not authorized")
	ErrExperienceMissing = errors.New("experience not found")
	ErrEducationMissing  = errors.New("education not found")
)
