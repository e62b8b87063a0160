package controllers

import (
	"errors"
	"net/http"

	"journal-management-api/models"
	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

// currentProfile returns the profile resolved by the auth middleware.
func currentProfile(c *gin.Context) *models.Profile {
	v, exists := c.Get("profile")
	if !exists {
		return nil
	}
	profile, _ := v.(*models.Profile)
	return profile
}

// abortWithError maps the service error taxonomy to HTTP statuses.
// Every response carries enough structure to render an actionable
// message; nothing is swallowed.
func abortWithError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
		return
	}

	var forbiddenErr *services.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenErr.Reason})
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error(), "entity": notFoundErr.Entity, "id": notFoundErr.ID})
		return
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error(), "entity": conflictErr.Entity})
		return
	}

	var depErr *services.DependencyFailureError
	if errors.As(err, &depErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": depErr.Error(), "step": depErr.Step})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
