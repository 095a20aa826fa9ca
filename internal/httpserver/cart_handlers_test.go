package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddAndGet(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin("reader@example.com", "Secret123")
	book := env.createBook("The Dispossessed")

	rec, resp := env.doJSON(http.MethodPost, "/api/cart", token, map[string]string{
		"bookId": book.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Book added to cart", resp["message"])

	cart, ok := resp["cart"].([]any)
	require.True(t, ok)
	require.Len(t, cart, 1)
	assert.Equal(t, book.ID.String(), cart[0])

	rec, resp = env.doJSON(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	books, ok := resp["cart"].([]any)
	require.True(t, ok)
	require.Len(t, books, 1)
	first, ok := books[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The Dispossessed", first["title"])
}

func TestCart_AddDuplicate(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin("reader@example.com", "Secret123")
	book := env.createBook("Dune")

	payload := map[string]string{"bookId": book.ID.String()}
	rec, _ := env.doJSON(http.MethodPost, "/api/cart", token, payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.doJSON(http.MethodPost, "/api/cart", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "book already in cart", resp["error"])

	rec, resp = env.doJSON(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books, _ := resp["cart"].([]any)
	assert.Len(t, books, 1)
}

func TestCart_AddUnknownBook(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin("reader@example.com", "Secret123")

	rec, resp := env.doJSON(http.MethodPost, "/api/cart", token, map[string]string{
		"bookId": uuid.NewString(),
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, resp["error"])
}

func TestCart_RemoveBook(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin("reader@example.com", "Secret123")
	book := env.createBook("Neuromancer")

	rec, _ := env.doJSON(http.MethodPost, "/api/cart", token, map[string]string{
		"bookId": book.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.doJSON(http.MethodDelete, "/api/cart/"+book.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Book removed from cart", resp["message"])
	cart, _ := resp["cart"].([]any)
	assert.Empty(t, cart)

	// Removing again is still a success.
	rec, _ = env.doJSON(http.MethodDelete, "/api/cart/"+book.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCart_Clear(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin("reader@example.com", "Secret123")

	for _, title := range []string{"One", "Two", "Three"} {
		book := env.createBook(title)
		rec, _ := env.doJSON(http.MethodPost, "/api/cart", token, map[string]string{
			"bookId": book.ID.String(),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, resp := env.doJSON(http.MethodDelete, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart cleared", resp["message"])

	rec, resp = env.doJSON(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books, _ := resp["cart"].([]any)
	assert.Empty(t, books)
}

func TestCart_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.doJSON(http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, resp["error"])
}
