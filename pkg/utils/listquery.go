package utils

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ListQuery carries the complaint list view options taken from the request.
type ListQuery struct {
	Status   string
	Category string
	Search   string
	Sort     string
}

// GetListQuery extracts filter/search/sort parameters from the request.
// Absent filters come back as "all" so callers can treat them uniformly.
func GetListQuery(c echo.Context) ListQuery {
	status := c.QueryParam("status")
	if status == "" {
		status = "all"
	}

	category := c.QueryParam("category")
	if category == "" {
		category = "all"
	}

	sort := c.QueryParam("sort")
	if sort != "oldest" && sort != "priority" {
		sort = "newest"
	}

	return ListQuery{
		Status:   status,
		Category: category,
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Sort:     sort,
	}
}
