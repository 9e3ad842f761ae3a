package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendlog/internal/models"
)

// CategoryHandler serves the fixed category list.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// ListCategories returns every category an expense may use
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200 {array} string "Category names"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}
