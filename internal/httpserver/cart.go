package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"online-bookstore/internal/middleware"
	"online-bookstore/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddBook(c echo.Context) error {
	userID, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	cart, err := h.Svc.AddBook(c.Request().Context(), userID, bookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Book added to cart",
		"cart":    cart,
	})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	userID, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	books, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": books})
}

func (h *CartHTTP) RemoveBook(c echo.Context) error {
	userID, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	cart, err := h.Svc.RemoveBook(c.Request().Context(), userID, bookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Book removed from cart",
		"cart":    cart,
	})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	userID, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(c.Request().Context(), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared"})
}
