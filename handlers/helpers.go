package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"fixly/middleware"
	"fixly/models"

	"github.com/gin-gonic/gin"
)

// actor returns the verified caller, aborting with 401 when missing.
func actor(c *gin.Context) (models.Actor, bool) {
	a, ok := middleware.GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return a, ok
}

// optionalActor returns the caller when authenticated, or a zero Actor on
// public routes.
func optionalActor(c *gin.Context) models.Actor {
	a, _ := middleware.GetActor(c)
	return a
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func queryFloat(c *gin.Context, name string) float64 {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return 0
}

func queryFloatPtr(c *gin.Context, name string) *float64 {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return &v
		}
	}
	return nil
}

// queryDate parses an optional 2006-01-02 query parameter. It responds with
// 400 and returns false when the value is present but malformed.
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	v, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a date in 2006-01-02 form"})
		return time.Time{}, false
	}
	return v, true
}

// formImage pulls the uploaded image file out of a multipart request.
func formImage(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image file"})
		return nil, false
	}
	return file, true
}
