package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/tintaeletras/bookshop/internal/models"
	"github.com/tintaeletras/bookshop/internal/util"
	"gorm.io/gorm"
)

// Service owns book order creation and the status lifecycle. The store handle
// is injected; the service holds no other state.
type Service struct {
	db      *gorm.DB
	catalog *CatalogReader
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, catalog: &CatalogReader{DB: db}}
}

type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Items           []LineRequest
	Notes           *string
}

// Create validates the requested lines against the catalog, prices them from
// the current book prices, and writes the order header plus its items in one
// transaction. The catalog read and the write are deliberately not one
// atomic unit; stock is checked against the snapshot at read time and never
// decremented.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (*models.BookOrder, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	ids := make([]uint, 0, len(in.Items))
	for _, ln := range in.Items {
		if ln.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		ids = append(ids, ln.BookID)
	}

	books, err := s.catalog.BooksByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := validateLines(in.Items, books); err != nil {
		return nil, err
	}

	lines, total := priceLines(in.Items, books)

	order := &models.BookOrder{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		Notes:           in.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		items := make([]models.BookOrderItem, 0, len(lines))
		for _, ln := range lines {
			items = append(items, models.BookOrderItem{
				OrderID:  order.ID,
				BookID:   ln.BookID,
				Quantity: ln.Quantity,
				Price:    ln.Price,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*models.BookOrder, error) {
	var order models.BookOrder
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: book order with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

// ListQuery filters and paginates the order listing. All fields are optional;
// limit defaults to util.DefaultPageSize, offset to 0.
type ListQuery struct {
	Status *models.OrderStatus
	Limit  *int
	Offset *int
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]models.BookOrder, error) {
	limit, offset := util.LimitOffset(q.Limit, q.Offset)

	tx := s.db.WithContext(ctx).Model(&models.BookOrder{})
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}

	var out []models.BookOrder
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus overwrites the order status and refreshes updated_at. Transitions
// are unconstrained beyond enum membership; completed and cancelled are not
// structurally terminal.
func (s *Service) SetStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.BookOrder, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var order models.BookOrder
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: book order with id %d", ErrNotFound, id)
		}
		return nil, err
	}

	order.Status = status
	if err := s.db.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ItemsByOrder returns the persisted line items for an order, oldest first.
// Order creation does not return items; callers needing them re-query here.
func (s *Service) ItemsByOrder(ctx context.Context, orderID uint) ([]models.BookOrderItem, error) {
	var items []models.BookOrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
