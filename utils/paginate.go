package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Paginate applies page/limit query params to the query, writes the page plus
// pagination meta to the response and returns any database error.
func Paginate(c *fiber.Ctx, query *gorm.DB, out interface{}) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Model(out).Count(&total).Error; err != nil {
		return err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(out).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   out,
		"meta": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
