package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// List is the envelope for every collection endpoint.
type List[T any] struct {
	Items []T `json:"items"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created JSON response.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}

// Items writes a 200 list envelope. A nil slice is sent as [] so clients never
// see "items": null.
func Items[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(c, http.StatusOK, List[T]{Items: items})
}
