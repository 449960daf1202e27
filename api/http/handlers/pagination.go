package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parsePage reads 1-based ?page and ?limit query params and converts them to
// a LIMIT/OFFSET pair.
func parsePage(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = defLimit
	page := 1
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	return limit, (page - 1) * limit
}
