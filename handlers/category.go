package handlers

import (
	"net/http"

	"fixly/models"
	categoryService "fixly/services/category"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the service category taxonomy. Writes are wired
// behind the admin role at the route level.
type CategoryHandler struct {
	CategorySvc categoryService.CategoryService
}

// List returns categories. The public sees active ones; admins see all.
func (h *CategoryHandler) List(c *gin.Context) {
	activeOnly := !optionalActor(c).IsAdmin()
	categories, err := h.CategorySvc.List(activeOnly)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetByID returns a single category.
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.CategorySvc.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create adds a new category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryService.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	category, err := h.CategorySvc.Create(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update patches a category.
func (h *CategoryHandler) Update(c *gin.Context) {
	var patch models.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	category, err := h.CategorySvc.Update(c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete removes an empty category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.CategorySvc.Delete(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadImage stores a category image.
func (h *CategoryHandler) UploadImage(c *gin.Context) {
	file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	category, err := h.CategorySvc.UploadImage(c.Param("id"), file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}
