package orders

import (
	"github.com/shopspring/decimal"
	"github.com/tintaeletras/bookshop/internal/models"
)

// PricedLine carries the snapshot price taken from the catalog at order time.
type PricedLine struct {
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// priceLines computes the authoritative per-line prices and the order total
// from already-fetched catalog records. Client-supplied prices are never
// consulted. Deterministic, no I/O.
func priceLines(lines []LineRequest, books map[uint]models.Book) ([]PricedLine, decimal.Decimal) {
	priced := make([]PricedLine, 0, len(lines))
	total := decimal.Zero
	for _, ln := range lines {
		b := books[ln.BookID]
		priced = append(priced, PricedLine{
			BookID:   ln.BookID,
			Quantity: ln.Quantity,
			Price:    b.Price,
		})
		total = total.Add(b.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return priced, total
}
