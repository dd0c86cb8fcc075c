package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tintaeletras/bookshop/internal/logging"
	"github.com/tintaeletras/bookshop/internal/models"
	"github.com/tintaeletras/bookshop/internal/util"
)

type BlogHandler struct {
	DB *gorm.DB
}

func (h *BlogHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.create_category")

	var req struct {
		Name        string  `json:"name"`
		Slug        string  `json:"slug"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and slug are required")
	}

	cat := models.BlogCategory{Name: req.Name, Slug: req.Slug, Description: req.Description}
	if err := h.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("create_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *BlogHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_categories")

	var cats []models.BlogCategory
	if err := h.DB.WithContext(ctx).Find(&cats).Error; err != nil {
		l.Error("get_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *BlogHandler) CreateTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.create_tag")

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("create_tag_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and slug are required")
	}

	tag := models.BlogTag{Name: req.Name, Slug: req.Slug}
	if err := h.DB.WithContext(ctx).Create(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("create_tag_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create tag")
	}

	l.Info("create_tag_success", "tag_id", tag.ID)
	return c.JSON(http.StatusCreated, tag)
}

func (h *BlogHandler) GetTags(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_tags")

	var tags []models.BlogTag
	if err := h.DB.WithContext(ctx).Order("created_at DESC").Find(&tags).Error; err != nil {
		l.Error("get_tags_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list tags")
	}
	return c.JSON(http.StatusOK, tags)
}

type createPostRequest struct {
	Title            string  `json:"title"`
	Slug             string  `json:"slug"`
	Content          string  `json:"content"`
	Excerpt          *string `json:"excerpt"`
	FeaturedImageURL *string `json:"featured_image_url"`
	CategoryID       uint    `json:"category_id"`
	Published        bool    `json:"published"`
	TagIDs           []uint  `json:"tag_ids"`
}

func (h *BlogHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.create_post")

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		l.Error("create_post_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title == "" || req.Slug == "" || req.Content == "" || req.CategoryID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "title, slug, content and category_id are required")
	}

	post := models.BlogPost{
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		FeaturedImageURL: req.FeaturedImageURL,
		CategoryID:       req.CategoryID,
		Published:        req.Published,
	}
	if req.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if len(req.TagIDs) == 0 {
			return nil
		}
		links := make([]models.BlogPostTag, 0, len(req.TagIDs))
		for _, tagID := range req.TagIDs {
			links = append(links, models.BlogPostTag{PostID: post.ID, TagID: tagID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("create_post_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create post")
	}

	l.Info("create_post_success", "post_id", post.ID)
	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) GetPosts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_posts")

	categoryID, err := intQuery(c, "category_id")
	if err != nil {
		return err
	}
	tagID, err := intQuery(c, "tag_id")
	if err != nil {
		return err
	}
	published, err := boolQuery(c, "published")
	if err != nil {
		return err
	}
	limitQ, err := intQuery(c, "limit")
	if err != nil {
		return err
	}
	offsetQ, err := intQuery(c, "offset")
	if err != nil {
		return err
	}
	limit, offset := util.LimitOffset(limitQ, offsetQ)

	q := h.DB.WithContext(ctx).Model(&models.BlogPost{})
	if tagID != nil {
		q = q.Joins("JOIN blog_post_tags ON blog_post_tags.post_id = blog_posts.id").
			Where("blog_post_tags.tag_id = ?", *tagID)
	}
	if categoryID != nil {
		q = q.Where("blog_posts.category_id = ?", *categoryID)
	}
	if published != nil {
		q = q.Where("blog_posts.published = ?", *published)
	}

	var posts []models.BlogPost
	if err := q.Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		l.Error("get_posts_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list posts")
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) GetPostBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get_post_by_slug")

	slug := c.Param("slug")

	var post models.BlogPost
	if err := h.DB.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "blog post with slug "+slug+" not found")
		}
		l.Error("get_post_by_slug_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch post")
	}
	return c.JSON(http.StatusOK, post)
}

type updatePostRequest struct {
	Title            *string `json:"title"`
	Slug             *string `json:"slug"`
	Content          *string `json:"content"`
	Excerpt          *string `json:"excerpt"`
	FeaturedImageURL *string `json:"featured_image_url"`
	CategoryID       *uint   `json:"category_id"`
	Published        *bool   `json:"published"`
	TagIDs           *[]uint `json:"tag_ids"`
}

func (h *BlogHandler) UpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.update_post")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		l.Error("update_post_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var post models.BlogPost
	if err := h.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "blog post not found")
		}
		l.Error("update_post_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch post")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.FeaturedImageURL != nil {
		post.FeaturedImageURL = req.FeaturedImageURL
	}
	if req.CategoryID != nil {
		post.CategoryID = *req.CategoryID
	}
	if req.Published != nil {
		post.Published = *req.Published
		if *req.Published {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		if req.TagIDs == nil {
			return nil
		}
		// Replace the whole tag set when tag_ids is present.
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.BlogPostTag{}).Error; err != nil {
			return err
		}
		if len(*req.TagIDs) == 0 {
			return nil
		}
		links := make([]models.BlogPostTag, 0, len(*req.TagIDs))
		for _, tagID := range *req.TagIDs {
			links = append(links, models.BlogPostTag{PostID: post.ID, TagID: tagID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("update_post_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update post")
	}

	l.Info("update_post_success", "post_id", post.ID)
	return c.JSON(http.StatusOK, post)
}
