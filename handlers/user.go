package handlers

import (
	"net/http"

	"fixly/models"
	userService "fixly/services/user"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account management for authenticated callers.
type UserHandler struct {
	UserSvc userService.UserService
}

// GetMe returns the caller's own account.
func (h *UserHandler) GetMe(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.UserSvc.GetByID(a, a.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetByID returns an account visible to the caller.
func (h *UserHandler) GetByID(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.UserSvc.GetByID(a, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update patches an account.
func (h *UserHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	user, err := h.UserSvc.Update(a, c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadProfileImage stores the caller's profile image.
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	user, err := h.UserSvc.UploadProfileImage(a, file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes an account.
func (h *UserHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.UserSvc.Delete(a, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
