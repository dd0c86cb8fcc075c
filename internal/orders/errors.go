package orders

import "errors"

var (
	ErrValidation        = errors.New("validation")   // 400
	ErrNotFound          = errors.New("not found")    // 404
	ErrBooksNotFound     = errors.New("one or more books not found")
	ErrBooksUnavailable  = errors.New("one or more books are not available")
	ErrInsufficientStock = errors.New("insufficient stock")
)
