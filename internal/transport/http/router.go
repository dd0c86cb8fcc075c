package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/tintaeletras/bookshop/internal/handlers"
)

type Deps struct {
	BlogHandler      *handlers.BlogHandler
	CommentHandler   *handlers.CommentHandler
	BookHandler      *handlers.BookHandler
	OrderHandler     *handlers.OrderHandler
	MarketingHandler *handlers.MarketingHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	blog := v1.Group("/blog")
	blog.POST("/categories", d.BlogHandler.CreateCategory)
	blog.GET("/categories", d.BlogHandler.GetCategories)
	blog.POST("/tags", d.BlogHandler.CreateTag)
	blog.GET("/tags", d.BlogHandler.GetTags)
	blog.POST("/posts", d.BlogHandler.CreatePost)
	blog.GET("/posts", d.BlogHandler.GetPosts)
	blog.GET("/posts/:slug", d.BlogHandler.GetPostBySlug)
	blog.PATCH("/posts/:id", d.BlogHandler.UpdatePost)
	blog.POST("/comments", d.CommentHandler.CreateComment)
	blog.GET("/comments", d.CommentHandler.GetComments)
	blog.POST("/comments/:id/approve", d.CommentHandler.ApproveComment)

	books := v1.Group("/books")
	books.POST("", d.BookHandler.CreateBook)
	books.GET("", d.BookHandler.GetBooks)
	books.GET("/:id", d.BookHandler.GetBook)
	books.PATCH("/:id", d.BookHandler.UpdateBook)

	orders := v1.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateOrderStatus)

	v1.POST("/subscriptions", d.MarketingHandler.CreateSubscription)
	v1.GET("/subscriptions", d.MarketingHandler.GetSubscriptions)
	v1.POST("/subscriptions/unsubscribe", d.MarketingHandler.Unsubscribe)

	v1.POST("/whatsapp-contacts", d.MarketingHandler.CreateWhatsappContact)
	v1.GET("/whatsapp-contacts", d.MarketingHandler.GetWhatsappContacts)
	v1.POST("/whatsapp-contacts/:id/deactivate", d.MarketingHandler.DeactivateWhatsappContact)
}
