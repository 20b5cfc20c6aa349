package handlers

import (
	"net/http"

	"fixly/cron"
	earningsService "fixly/services/earnings"
	providerService "fixly/services/provider"
	userService "fixly/services/user"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes platform administration: account listing, provider
// verification and the earnings ledger.
type AdminHandler struct {
	UserSvc     userService.UserService
	ProviderSvc providerService.ProviderService
	EarningsSvc earningsService.EarningsService
}

// ListUsers runs the admin account listing.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	req := userService.ListRequest{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", utils.DefaultPageSize),
	}
	result, err := h.UserSvc.List(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateAdmin mints a new admin account.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req userService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	user, err := h.UserSvc.Register(req, &a)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// SetProviderVerification moves a provider through the verification flow.
func (h *AdminHandler) SetProviderVerification(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.ProviderSvc.SetVerificationStatus(c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// EarningsSummary aggregates the ledger over a rolling window.
func (h *AdminHandler) EarningsSummary(c *gin.Context) {
	period := c.DefaultQuery("period", earningsService.PeriodWeek)
	summary, err := h.EarningsSvc.Summary(period)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// EarningsList returns ledger records, newest first. The from/to query
// parameters take dates in 2006-01-02 form.
func (h *AdminHandler) EarningsList(c *gin.Context) {
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}
	result, err := h.EarningsSvc.List(from, to, queryInt(c, "page", 1), queryInt(c, "limit", utils.DefaultPageSize))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateEarningsNotes attaches an operator note to a ledger record.
func (h *AdminHandler) UpdateEarningsNotes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	record, err := h.EarningsSvc.UpdateNotes(c.Param("id"), req.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// TriggerRollup enqueues an immediate commission sweep.
func (h *AdminHandler) TriggerRollup(c *gin.Context) {
	if err := cron.EnqueueRollup(); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": "Rollup enqueued"})
}
