package controllers

import (
	"net/http"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

type DecisionRequest struct {
	PaperID string `json:"paper_id" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

// Decide applies an editorial accept/reject decision to a paper
func Decide(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := services.NewDecisionService(nil).Decide(req.PaperID, req.Action, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"action":   paper.Status,
		"paper_id": paper.ID,
	})
}
