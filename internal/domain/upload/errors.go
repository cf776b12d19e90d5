package upload

import "errors"

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
)
