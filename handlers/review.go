package handlers

import (
	"net/http"

	reviewService "fixly/services/review"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes booking reviews.
type ReviewHandler struct {
	ReviewSvc reviewService.ReviewService
}

// Create stores a review for one of the caller's completed bookings.
func (h *ReviewHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reviewService.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	review, err := h.ReviewSvc.Create(a, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetForBooking returns the review left for a booking.
func (h *ReviewHandler) GetForBooking(c *gin.Context) {
	review, err := h.ReviewSvc.GetForBooking(c.Param("bookingId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
