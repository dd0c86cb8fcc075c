package orders

import (
	"context"

	"github.com/tintaeletras/bookshop/internal/models"
	"gorm.io/gorm"
)

// CatalogReader resolves book ids to their current catalog records. It never
// fails on missing ids; callers detect gaps by comparing against the
// requested set.
type CatalogReader struct {
	DB *gorm.DB
}

func (r *CatalogReader) BooksByID(ctx context.Context, ids []uint) (map[uint]models.Book, error) {
	distinct := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	var books []models.Book
	if err := r.DB.WithContext(ctx).Where("id IN ?", distinct).Find(&books).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return byID, nil
}
