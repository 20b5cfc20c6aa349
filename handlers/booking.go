package handlers

import (
	"net/http"

	bookingService "fixly/services/booking"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle.
type BookingHandler struct {
	BookingSvc bookingService.BookingService
}

// Create places a booking for the caller.
func (h *BookingHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req bookingService.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	booking, err := h.BookingSvc.Create(a, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateStatus moves a booking along the lifecycle.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	booking, err := h.BookingSvc.UpdateStatus(a, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetByID returns an assembled booking visible to the caller.
func (h *BookingHandler) GetByID(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	detail, err := h.BookingSvc.GetByID(a, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListMine returns the caller's own bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	details, err := h.BookingSvc.ListForCustomer(a)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListProvider returns the bookings of the caller's provider profile.
func (h *BookingHandler) ListProvider(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	details, err := h.BookingSvc.ListForProvider(a, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
