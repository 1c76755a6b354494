package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tech-hub-api/internal/apperror"
)

// queryInt reads an optional integer query parameter; missing means 0
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.InvalidInput("validation failed", map[string]string{name: "must be an integer"})
	}
	return n, nil
}

// queryBool reads an optional boolean query parameter
func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.InvalidInput("validation failed", map[string]string{name: "must be true or false"})
	}
	return &b, nil
}

// limitOffset reads limit and offset; the service clamps them
func limitOffset(c *gin.Context) (int, int, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
