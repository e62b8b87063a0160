package controllers

import (
	"net/http"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

type DeclareCOIRequest struct {
	PaperID   string `json:"paper_id" binding:"required"`
	Statement string `json:"statement"`
}

// DeclareCOI files a conflict-of-interest declaration for the caller
func DeclareCOI(c *gin.Context) {
	profile := currentProfile(c)

	var req DeclareCOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	declaration, err := services.NewCOIService(nil).Declare(req.PaperID, profile.ID, profile.Role, req.Statement)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "declaration": declaration})
}

// GetCOIStatus reports whether the caller declared on a paper
func GetCOIStatus(c *gin.Context) {
	profile := currentProfile(c)
	svc := services.NewCOIService(nil)

	declaration, err := svc.LatestForPair(c.Param("id"), profile.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"declared": declaration != nil, "declaration": declaration})
}

// GetPaperCOIs lists declarations on a paper for the decision panel
func GetPaperCOIs(c *gin.Context) {
	declarations, err := services.NewCOIService(nil).ListForPaper(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"declarations": declarations})
}
