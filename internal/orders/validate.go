package orders

import (
	"fmt"

	"github.com/tintaeletras/bookshop/internal/models"
)

// LineRequest is one requested (book, quantity) pair.
type LineRequest struct {
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

// validateLines gates an order request against the fetched catalog records.
// Checks run in a fixed order so that the reported error is unambiguous:
// existence, then availability, then stock. The first violation fails the
// whole order; partial orders are never accepted.
func validateLines(lines []LineRequest, books map[uint]models.Book) error {
	distinct := make(map[uint]struct{}, len(lines))
	for _, ln := range lines {
		distinct[ln.BookID] = struct{}{}
	}
	if len(books) < len(distinct) {
		return ErrBooksNotFound
	}

	for _, b := range books {
		if !b.Available {
			return ErrBooksUnavailable
		}
	}

	for _, ln := range lines {
		b := books[ln.BookID]
		if b.StockQuantity < ln.Quantity {
			return fmt.Errorf("%w for book: %s", ErrInsufficientStock, b.Title)
		}
	}

	return nil
}
