package httpHandler

import (
	"net/http"

	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catalog *usecases.CatalogUseCase
}

func NewCategoryHandler(catalog *usecases.CatalogUseCase) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category entities.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.catalog.CreateCategory(ActingUser(c), &category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"data":    created,
	})
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(ActingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  categories,
		"count": len(categories),
	})
}

// GetCategory handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.catalog.GetCategory(ActingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var payload entities.Category
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	category, err := h.catalog.UpdateCategory(ActingUser(c), c.Param("id"), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id. Live devices in
// the category are tombstoned with it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// RestoreCategory handles POST /api/v1/categories/:id/restore
func (h *CategoryHandler) RestoreCategory(c *gin.Context) {
	if err := h.catalog.RestoreCategory(ActingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category restored successfully"})
}
