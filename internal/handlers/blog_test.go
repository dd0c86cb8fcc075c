package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tintaeletras/bookshop/internal/models"
)

func TestCreateCategoryEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/blog/categories", map[string]any{
		"name": "Resenhas", "slug": "resenhas",
	})
	requireStatus(t, rec, http.StatusCreated)
	cat := decode[models.BlogCategory](t, rec)
	require.NotZero(t, cat.ID)
	require.Equal(t, "resenhas", cat.Slug)

	// Same slug again.
	rec = env.do(http.MethodPost, "/api/v1/blog/categories", map[string]any{
		"name": "Outra", "slug": "resenhas",
	})
	requireStatus(t, rec, http.StatusConflict)

	rec = env.do(http.MethodPost, "/api/v1/blog/categories", map[string]any{"name": "Sem slug"})
	requireStatus(t, rec, http.StatusBadRequest)

	rec = env.do(http.MethodGet, "/api/v1/blog/categories", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[[]models.BlogCategory](t, rec), 1)
}

func TestCreateTagEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/blog/tags", map[string]any{
		"name": "Ficção", "slug": "ficcao",
	})
	requireStatus(t, rec, http.StatusCreated)

	rec = env.do(http.MethodPost, "/api/v1/blog/tags", map[string]any{
		"name": "Duplicada", "slug": "ficcao",
	})
	requireStatus(t, rec, http.StatusConflict)

	rec = env.do(http.MethodGet, "/api/v1/blog/tags", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[[]models.BlogTag](t, rec), 1)
}

func TestCreatePostEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory("Resenhas", "resenhas")

	tag := models.BlogTag{Name: "Ficção", Slug: "ficcao"}
	require.NoError(t, env.db.Create(&tag).Error)

	rec := env.do(http.MethodPost, "/api/v1/blog/posts", map[string]any{
		"title":       "Primeiro post",
		"slug":        "primeiro-post",
		"content":     "conteúdo",
		"category_id": cat.ID,
		"published":   true,
		"tag_ids":     []uint{tag.ID},
	})
	requireStatus(t, rec, http.StatusCreated)
	post := decode[models.BlogPost](t, rec)
	require.True(t, post.Published)
	require.NotNil(t, post.PublishedAt)

	var links []models.BlogPostTag
	require.NoError(t, env.db.Where("post_id = ?", post.ID).Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, tag.ID, links[0].TagID)

	// Draft posts carry no published_at.
	rec = env.do(http.MethodPost, "/api/v1/blog/posts", map[string]any{
		"title":       "Rascunho",
		"slug":        "rascunho",
		"content":     "conteúdo",
		"category_id": cat.ID,
	})
	requireStatus(t, rec, http.StatusCreated)
	draft := decode[models.BlogPost](t, rec)
	require.False(t, draft.Published)
	require.Nil(t, draft.PublishedAt)

	rec = env.do(http.MethodPost, "/api/v1/blog/posts", map[string]any{
		"title": "Sem categoria", "slug": "sem-categoria", "content": "x",
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestGetPostsEndpointFilters(t *testing.T) {
	env := newTestEnv(t)
	catA := env.seedCategory("A", "cat-a")
	catB := env.seedCategory("B", "cat-b")

	published := env.seedPost("Publicado", "publicado", catA.ID, true)
	draft := env.seedPost("Rascunho", "rascunho", catB.ID, false)

	tag := models.BlogTag{Name: "Ficção", Slug: "ficcao"}
	require.NoError(t, env.db.Create(&tag).Error)
	require.NoError(t, env.db.Create(&models.BlogPostTag{PostID: published.ID, TagID: tag.ID}).Error)

	rec := env.do(http.MethodGet, "/api/v1/blog/posts", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[[]models.BlogPost](t, rec), 2)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/v1/blog/posts?category_id=%d", catB.ID), nil)
	requireStatus(t, rec, http.StatusOK)
	byCat := decode[[]models.BlogPost](t, rec)
	require.Len(t, byCat, 1)
	require.Equal(t, draft.ID, byCat[0].ID)

	rec = env.do(http.MethodGet, "/api/v1/blog/posts?published=true", nil)
	requireStatus(t, rec, http.StatusOK)
	byPub := decode[[]models.BlogPost](t, rec)
	require.Len(t, byPub, 1)
	require.Equal(t, published.ID, byPub[0].ID)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/v1/blog/posts?tag_id=%d", tag.ID), nil)
	requireStatus(t, rec, http.StatusOK)
	byTag := decode[[]models.BlogPost](t, rec)
	require.Len(t, byTag, 1)
	require.Equal(t, published.ID, byTag[0].ID)
}

func TestGetPostBySlugEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory("A", "cat-a")
	post := env.seedPost("Publicado", "publicado", cat.ID, true)

	rec := env.do(http.MethodGet, "/api/v1/blog/posts/publicado", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, post.ID, decode[models.BlogPost](t, rec).ID)

	rec = env.do(http.MethodGet, "/api/v1/blog/posts/nao-existe", nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestUpdatePostEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory("A", "cat-a")
	post := env.seedPost("Original", "original", cat.ID, false)

	tagA := models.BlogTag{Name: "A", Slug: "tag-a"}
	tagB := models.BlogTag{Name: "B", Slug: "tag-b"}
	require.NoError(t, env.db.Create(&tagA).Error)
	require.NoError(t, env.db.Create(&tagB).Error)
	require.NoError(t, env.db.Create(&models.BlogPostTag{PostID: post.ID, TagID: tagA.ID}).Error)

	// Partial update touches only the given fields.
	rec := env.do(http.MethodPatch, fmt.Sprintf("/api/v1/blog/posts/%d", post.ID),
		map[string]any{"title": "Renomeado"})
	requireStatus(t, rec, http.StatusOK)
	updated := decode[models.BlogPost](t, rec)
	require.Equal(t, "Renomeado", updated.Title)
	require.Equal(t, post.Content, updated.Content)
	require.False(t, updated.Published)

	var links []models.BlogPostTag
	require.NoError(t, env.db.Where("post_id = ?", post.ID).Find(&links).Error)
	require.Len(t, links, 1, "tag set untouched when tag_ids is absent")

	// Publishing stamps published_at.
	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/v1/blog/posts/%d", post.ID),
		map[string]any{"published": true})
	requireStatus(t, rec, http.StatusOK)
	publishedPost := decode[models.BlogPost](t, rec)
	require.True(t, publishedPost.Published)
	require.NotNil(t, publishedPost.PublishedAt)

	// tag_ids replaces the whole set.
	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/v1/blog/posts/%d", post.ID),
		map[string]any{"tag_ids": []uint{tagB.ID}})
	requireStatus(t, rec, http.StatusOK)
	require.NoError(t, env.db.Where("post_id = ?", post.ID).Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, tagB.ID, links[0].TagID)

	// An empty tag_ids clears it.
	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/v1/blog/posts/%d", post.ID),
		map[string]any{"tag_ids": []uint{}})
	requireStatus(t, rec, http.StatusOK)
	require.NoError(t, env.db.Where("post_id = ?", post.ID).Find(&links).Error)
	require.Empty(t, links)

	rec = env.do(http.MethodPatch, "/api/v1/blog/posts/424242", map[string]any{"title": "x"})
	requireStatus(t, rec, http.StatusNotFound)
}
