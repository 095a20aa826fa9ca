package httpserver

import (
	"github.com/labstack/echo/v4"

	mw "online-bookstore/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	CartHandler *CartHTTP
	BookHandler *BookHTTP
	JWTSecret   []byte
	UploadDir   string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/uploads", d.UploadDir)

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/signup", d.AuthHandler.Signup)
	users.POST("/login", d.AuthHandler.Login)

	profile := users.Group("/profile", mw.Auth(d.JWTSecret))
	profile.GET("", d.AuthHandler.Profile)
	profile.PUT("/password", d.AuthHandler.ChangePassword)

	cart := api.Group("/cart", mw.Auth(d.JWTSecret))
	cart.POST("", d.CartHandler.AddBook)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("/:bookId", d.CartHandler.RemoveBook)
	cart.DELETE("", d.CartHandler.ClearCart)

	api.GET("/books", d.BookHandler.ListBooks)
	api.GET("/books/:id", d.BookHandler.GetBook)
	api.GET("/search", d.BookHandler.Search)

	admin := api.Group("/books", mw.Auth(d.JWTSecret), mw.RequireRole("admin"))
	admin.POST("", d.BookHandler.CreateBook)
	admin.PUT("/:id", d.BookHandler.UpdateBook)
	admin.DELETE("/:id", d.BookHandler.DeleteBook)
}
