package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tintaeletras/bookshop/internal/logging"
	"github.com/tintaeletras/bookshop/internal/models"
)

type BookHandler struct {
	DB *gorm.DB
}

type createBookRequest struct {
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          *string         `json:"isbn"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CoverImageURL *string         `json:"cover_image_url"`
	StockQuantity int             `json:"stock_quantity"`
	PublishedYear *int            `json:"published_year"`
	Publisher     *string         `json:"publisher"`
	Available     bool            `json:"available"`
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.create")

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		l.Error("create_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title == "" || req.Author == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and author are required")
	}
	if !req.Price.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if req.StockQuantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "stock_quantity cannot be negative")
	}

	book := models.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Description:   req.Description,
		Price:         req.Price,
		CoverImageURL: req.CoverImageURL,
		StockQuantity: req.StockQuantity,
		PublishedYear: req.PublishedYear,
		Publisher:     req.Publisher,
		Available:     req.Available,
	}
	if err := h.DB.WithContext(ctx).Create(&book).Error; err != nil {
		l.Error("create_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create book")
	}

	l.Info("create_book_success", "book_id", book.ID)
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.list")

	available, err := boolQuery(c, "available")
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return err
	}

	q := h.DB.WithContext(ctx).Model(&models.Book{})
	if available != nil {
		q = q.Where("available = ?", *available)
	}
	if limit != nil && *limit > 0 {
		q = q.Limit(*limit)
	}
	if offset != nil && *offset > 0 {
		q = q.Offset(*offset)
	}

	var books []models.Book
	if err := q.Order("id ASC").Find(&books).Error; err != nil {
		l.Error("list_books_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list books")
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.get")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var book models.Book
	if err := h.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("book with id %d not found", id))
		}
		l.Error("get_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch book")
	}
	return c.JSON(http.StatusOK, book)
}

type updateBookRequest struct {
	Title         *string          `json:"title"`
	Author        *string          `json:"author"`
	ISBN          *string          `json:"isbn"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	CoverImageURL *string          `json:"cover_image_url"`
	StockQuantity *int             `json:"stock_quantity"`
	PublishedYear *int             `json:"published_year"`
	Publisher     *string          `json:"publisher"`
	Available     *bool            `json:"available"`
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.update")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Error("update_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "stock_quantity cannot be negative")
	}

	var book models.Book
	if err := h.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("book with id %d not found", id))
		}
		l.Error("update_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch book")
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.ISBN != nil {
		book.ISBN = req.ISBN
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = req.CoverImageURL
	}
	if req.StockQuantity != nil {
		book.StockQuantity = *req.StockQuantity
	}
	if req.PublishedYear != nil {
		book.PublishedYear = req.PublishedYear
	}
	if req.Publisher != nil {
		book.Publisher = req.Publisher
	}
	if req.Available != nil {
		book.Available = *req.Available
	}

	if err := h.DB.WithContext(ctx).Save(&book).Error; err != nil {
		l.Error("update_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update book")
	}

	l.Info("update_book_success", "book_id", book.ID)
	return c.JSON(http.StatusOK, book)
}
