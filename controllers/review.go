package controllers

import (
	"net/http"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetAssignment returns one assignment with its paper, for the
// reviewer workspace. Reviewer-owned only.
func GetAssignment(c *gin.Context) {
	profile := currentProfile(c)

	assignment, err := services.NewReviewService(nil).Get(c.Param("id"), profile)
	if err != nil {
		abortWithError(c, err)
		return
	}

	latest, err := services.NewSubmissionService(nil).LatestVersion(assignment.PaperID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assignment, "latest_version": latest})
}

type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAssignmentStatus starts or declines an assignment
func UpdateAssignmentStatus(c *gin.Context) {
	var req UpdateAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := services.NewReviewService(nil).UpdateStatus(c.Param("id"), req.Status, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignment": assignment})
}

type SubmitReviewRequest struct {
	ReviewText     string `json:"review_text" binding:"required"`
	OverallScore   *int   `json:"overall_score" binding:"required"`
	Recommendation string `json:"recommendation" binding:"required"`
	IsAnonymous    bool   `json:"is_anonymous"`
}

// SubmitReview stores a review and marks the assignment submitted.
// After a successful submission the COI gate is consulted: when no
// declaration exists for (paper, reviewer) the response carries
// coi_required so the client routes to the declaration form before the
// review counts as fully complete.
func SubmitReview(c *gin.Context) {
	profile := currentProfile(c)

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.NewReviewService(nil).SubmitReview(c.Param("id"), &services.SubmitReviewInput{
		ReviewText:     req.ReviewText,
		OverallScore:   *req.OverallScore,
		Recommendation: req.Recommendation,
		IsAnonymous:    req.IsAnonymous,
	}, profile)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := gin.H{"ok": true, "review": result.Review}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}

	hasCOI, coiErr := services.NewCOIService(nil).HasDeclaration(result.Review.PaperID, profile.ID)
	if coiErr == nil && !hasCOI {
		response["coi_required"] = true
	}

	c.JSON(http.StatusOK, response)
}

// GetPaperReviews lists reviews on a paper for the editorial panel
func GetPaperReviews(c *gin.Context) {
	reviews, err := services.NewReviewService(nil).ListForPaper(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type LogActivityRequest struct {
	AssignmentID *string                `json:"assignment_id"`
	Action       string                 `json:"action" binding:"required"`
	Details      map[string]interface{} `json:"details"`
}

// LogReviewerActivity records a reviewer action reported by the client
func LogReviewerActivity(c *gin.Context) {
	profile := currentProfile(c)

	var req LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// rows are always attributed to the caller
	err := services.NewReviewService(nil).LogActivity(profile.ID, req.AssignmentID, req.Action, req.Details)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}
