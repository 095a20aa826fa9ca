package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"online-bookstore/internal/service"
	"online-bookstore/internal/util"
)

type BookHTTP struct {
	Svc       *service.CatalogService
	UploadDir string
}

func (h *BookHTTP) ListBooks(c echo.Context) error {
	books, err := h.Svc.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"books": books})
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	book, err := h.Svc.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"book": book})
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	in, err := h.bookInput(c)
	if err != nil {
		return err
	}

	book, err := h.Svc.CreateBook(c.Request().Context(), *in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Book added",
		"book":    book,
	})
}

func (h *BookHTTP) UpdateBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	in, err := h.bookInput(c)
	if err != nil {
		return err
	}

	book, err := h.Svc.UpdateBook(c.Request().Context(), id, *in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Book updated",
		"book":    book,
	})
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	book, err := h.Svc.DeleteBook(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Book deleted",
		"book":    book,
	})
}

func (h *BookHTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search query is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	books, err := h.Svc.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"books": books})
}

// bookInput accepts either a JSON body or a multipart form with an optional
// bookImage file.
func (h *BookHTTP) bookInput(c echo.Context) (*service.BookInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		price, err := strconv.ParseFloat(c.FormValue("price"), 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
		}

		in := &service.BookInput{
			Title:       c.FormValue("title"),
			Author:      c.FormValue("author"),
			Description: c.FormValue("description"),
			Price:       price,
			Category:    c.FormValue("category"),
		}

		if file, err := c.FormFile("bookImage"); err == nil {
			path, err := saveCover(file, h.UploadDir)
			if err != nil {
				return nil, err
			}
			in.CoverImage = path
		}
		return in, nil
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return &service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}, nil
}
