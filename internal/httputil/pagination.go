package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLimit is the page size used when the limit query parameter is absent.
	DefaultLimit = 50
	// MaxLimit is the largest page size a client may request.
	MaxLimit = 100
)

// Page is a window over an ordered listing.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads offset (alias skip) and limit from the query string.
func ParsePage(c *gin.Context) (Page, error) {
	raw, ok := c.GetQuery("offset")
	if !ok {
		raw = c.Query("skip")
	}
	offset, err := queryInt(raw, 0)
	if err != nil || offset < 0 {
		return Page{}, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err := queryInt(c.Query("limit"), DefaultLimit)
	if err != nil || limit < 1 || limit > MaxLimit {
		return Page{}, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return Page{Offset: offset, Limit: limit}, nil
}

func queryInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
