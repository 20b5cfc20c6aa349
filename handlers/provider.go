package handlers

import (
	"net/http"

	"fixly/models"
	providerService "fixly/services/provider"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider profiles and the provider directory.
type ProviderHandler struct {
	ProviderSvc providerService.ProviderService
}

// Register creates a provider account with its Pending profile.
func (h *ProviderHandler) Register(c *gin.Context) {
	var req providerService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.ProviderSvc.Register(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetProfile returns the caller's own provider profile.
func (h *ProviderHandler) GetProfile(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	view, err := h.ProviderSvc.GetProfile(a)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetByID returns a provider's public view.
func (h *ProviderHandler) GetByID(c *gin.Context) {
	view, err := h.ProviderSvc.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update patches the caller's provider profile.
func (h *ProviderHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var patch models.ProviderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.ProviderSvc.Update(a, patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateLocation moves the caller's service point.
func (h *ProviderHandler) UpdateLocation(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.ProviderSvc.UpdateLocation(a, req.Latitude, req.Longitude); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Search runs the provider directory query.
func (h *ProviderHandler) Search(c *gin.Context) {
	req := providerService.SearchRequest{
		CategoryID:         c.Query("category"),
		MinRating:          queryFloat(c, "minRating"),
		Availability:       c.Query("availability"),
		Search:             c.Query("search"),
		VerificationStatus: c.Query("verificationStatus"),
		Latitude:           queryFloat(c, "latitude"),
		Longitude:          queryFloat(c, "longitude"),
		RadiusKm:           queryFloat(c, "radius"),
		Sort:               c.Query("sort"),
		Page:               queryInt(c, "page", 1),
		Limit:              queryInt(c, "limit", utils.DefaultPageSize),
	}
	result, err := h.ProviderSvc.Search(optionalActor(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
