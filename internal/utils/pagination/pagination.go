package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params carries the 1-based page parameters used by list endpoints.
type Params struct {
	Page     int
	PageSize int
}

// ParseFromRequest reads page/pageSize query parameters, applying defaults.
// Bounds are validated by the service layer, not here.
func ParseFromRequest(c *fiber.Ctx) Params {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 0
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize", "20"))
	if err != nil {
		pageSize = 0
	}
	return Params{Page: page, PageSize: pageSize}
}
