package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"centavo/internal/models"
)

// CategoryHandler serves the fixed expense category set.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories handles listing the available expense categories.
// @Summary     Get categories
// @Description List the closed set of expense categories
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Category "Available categories"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories()})
}
