package controllers

import (
	"net/http"
	"time"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

type AssignReviewerRequest struct {
	PaperID             string  `json:"paper_id" binding:"required"`
	ReviewerID          string  `json:"reviewer_id" binding:"required"`
	DueDate             *string `json:"due_date"`
	Priority            *string `json:"priority"`
	ExpertiseMatchScore *int    `json:"expertise_match_score"`
	Notes               *string `json:"notes"`
}

// AssignReviewer creates a review assignment (editor/admin only)
func AssignReviewer(c *gin.Context) {
	var req AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, *req.DueDate)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD or RFC3339", "field": "due_date"})
			return
		}
		dueDate = &parsed
	}

	assignment, err := services.NewAssignmentService(nil).Create(&services.CreateAssignmentInput{
		PaperID:             req.PaperID,
		ReviewerID:          req.ReviewerID,
		DueDate:             dueDate,
		Priority:            req.Priority,
		ExpertiseMatchScore: req.ExpertiseMatchScore,
		Notes:               req.Notes,
	}, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "assignment": assignment})
}

// GetReviewerCandidates lists eligible reviewers for a paper
func GetReviewerCandidates(c *gin.Context) {
	candidates, err := services.NewAssignmentService(nil).Candidates(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviewers": candidates})
}

// GetMyAssignments lists the caller's review assignments
func GetMyAssignments(c *gin.Context) {
	profile := currentProfile(c)

	assignments, err := services.NewAssignmentService(nil).ListForReviewer(profile.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assignments})
}

// GetPaperAssignments lists assignments on a paper for the editorial panel
func GetPaperAssignments(c *gin.Context) {
	assignments, err := services.NewAssignmentService(nil).ListForPaper(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}
