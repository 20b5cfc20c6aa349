package handlers

import (
	"net/http"
	"strings"

	"fixly/models"
	listingService "fixly/services/listing"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// ListingHandler exposes the listing catalogue and directory search.
type ListingHandler struct {
	ListingSvc listingService.ListingService
}

// Create publishes a listing under the caller's provider profile.
func (h *ListingHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req listingService.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	listing, err := h.ListingSvc.Create(a, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// GetByID returns an assembled listing view.
func (h *ListingHandler) GetByID(c *gin.Context) {
	view, err := h.ListingSvc.GetByID(optionalActor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Search runs the listing directory query.
func (h *ListingHandler) Search(c *gin.Context) {
	var tags []string
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	req := listingService.SearchRequest{
		CategoryID: c.Query("category"),
		ProviderID: c.Query("provider"),
		MinPrice:   queryFloatPtr(c, "minPrice"),
		MaxPrice:   queryFloatPtr(c, "maxPrice"),
		Tags:       tags,
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", utils.DefaultPageSize),
	}
	result, err := h.ListingSvc.Search(optionalActor(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListOwn returns the caller's own listings.
func (h *ListingHandler) ListOwn(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	listings, err := h.ListingSvc.ListOwn(a)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// Update patches a listing owned by the caller.
func (h *ListingHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var patch models.ListingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	listing, err := h.ListingSvc.Update(a, c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// UploadImage stores a listing image.
func (h *ListingHandler) UploadImage(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	listing, err := h.ListingSvc.UploadImage(a, c.Param("id"), file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}
