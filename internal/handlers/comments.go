package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tintaeletras/bookshop/internal/events"
	"github.com/tintaeletras/bookshop/internal/logging"
	"github.com/tintaeletras/bookshop/internal/models"
)

type CommentHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.create")

	var req struct {
		PostID      uint   `json:"post_id"`
		AuthorName  string `json:"author_name"`
		AuthorEmail string `json:"author_email"`
		Content     string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("create_comment_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.PostID == 0 || req.AuthorName == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "post_id, author_name and content are required")
	}
	if !validEmail(req.AuthorEmail) {
		return echo.NewHTTPError(http.StatusBadRequest, "author_email is not a valid email")
	}

	var post models.BlogPost
	if err := h.DB.WithContext(ctx).First(&post, req.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("blog post with id %d not found", req.PostID))
		}
		l.Error("create_comment_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot verify post")
	}

	// New comments always await moderation.
	comment := models.BlogComment{
		PostID:      req.PostID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
		Approved:    false,
	}
	if err := h.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		l.Error("create_comment_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create comment")
	}

	publish(c, h.Producer, events.TopicBlogEvents, fmt.Sprint(comment.PostID), events.EventCommentCreated, map[string]any{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
	})

	l.Info("create_comment_success", "comment_id", comment.ID)
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.list")

	postID, err := intQuery(c, "post_id")
	if err != nil {
		return err
	}
	if postID == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "post_id is required")
	}
	approvedOnly, err := boolQuery(c, "approved_only")
	if err != nil {
		return err
	}

	q := h.DB.WithContext(ctx).Where("post_id = ?", *postID)
	if approvedOnly == nil || *approvedOnly {
		q = q.Where("approved = ?", true)
	}

	var comments []models.BlogComment
	if err := q.Order("created_at DESC").Find(&comments).Error; err != nil {
		l.Error("list_comments_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list comments")
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) ApproveComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.approve")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var comment models.BlogComment
	if err := h.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("comment with id %d not found", id))
		}
		l.Error("approve_comment_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch comment")
	}

	comment.Approved = true
	if err := h.DB.WithContext(ctx).Save(&comment).Error; err != nil {
		l.Error("approve_comment_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot approve comment")
	}

	publish(c, h.Producer, events.TopicBlogEvents, fmt.Sprint(comment.PostID), events.EventCommentApproved, map[string]any{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
	})

	l.Info("approve_comment_success", "comment_id", comment.ID)
	return c.JSON(http.StatusOK, comment)
}
