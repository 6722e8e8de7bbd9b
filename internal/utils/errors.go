package util

import "errors"

var (
	ErrPoolNotInitialized  = errors.New("buffer pool is not initialized")
	ErrFileNotFound        = errors.New("page file not found")
	ErrNegativePageNumber  = errors.New("negative page number")
	ErrPageNotFound        = errors.New("page not resident in buffer pool")
	ErrPageNotPinned       = errors.New("page is not pinned")
	ErrNoAvailableFrame    = errors.New("no available frame: all frames pinned")
	ErrShutdownFailed      = errors.New("shutdown failed: pages still pinned")
	ErrInvalidFrameCount   = errors.New("frame count must be positive")
	ErrUnknownStrategy     = errors.New("unknown replacement strategy")
	ErrInvalidFileSize     = errors.New("page file size is not a multiple of the page size")
	ErrInvalidInitialPages = errors.New("initial pages must be positive")
	ErrInvalidPageSize     = errors.New("buffer is not exactly one page")
	ErrPageOutOfBounds     = errors.New("page out of bounds")
)
