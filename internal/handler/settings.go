package handler

import (
	"localtrack/internal/models"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

type categoryResp struct {
	Name         models.Category    `json:"name"`
	Type         models.ExpenseType `json:"type"`
	FuelEligible bool               `json:"fuelEligible"`
}

// ListCategories returns the closed category list in display order.
func ListCategories(c *gin.Context) {
	all := models.Categories()
	items := make([]categoryResp, 0, len(all))
	for _, cat := range all {
		typ := models.ExpenseTypeExpense
		if cat.Income() {
			typ = models.ExpenseTypeIncome
		}
		items = append(items, categoryResp{Name: cat, Type: typ, FuelEligible: cat.FuelEligible()})
	}
	util.Success(c, util.Response{"items": items})
}

// GetSettings exposes the read-only settings the calculators run with.
func GetSettings(settings models.AppSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.Success(c, util.Response{"settings": settings})
	}
}
