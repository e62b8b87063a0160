package controllers

import (
	"net/http"
	"time"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

type CreateIssueRequest struct {
	Title                string  `json:"title" binding:"required"`
	Slug                 string  `json:"slug"`
	Volume               *int    `json:"volume"`
	Number               *int    `json:"number"`
	Description          *string `json:"description"`
	ScheduledReleaseDate *string `json:"scheduled_release_date"`
}

// CreateIssue creates an unpublished issue (editor/admin only)
func CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var scheduled *time.Time
	if req.ScheduledReleaseDate != nil && *req.ScheduledReleaseDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.ScheduledReleaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_release_date must be YYYY-MM-DD", "field": "scheduled_release_date"})
			return
		}
		scheduled = &parsed
	}

	issue, err := services.NewIssueService(nil).Create(&services.CreateIssueInput{
		Title:                req.Title,
		Slug:                 req.Slug,
		Volume:               req.Volume,
		Number:               req.Number,
		Description:          req.Description,
		ScheduledReleaseDate: scheduled,
	}, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "issue": issue})
}

// GetIssues lists issues; unpublished ones only for editors/admins
func GetIssues(c *gin.Context) {
	issues, err := services.NewIssueService(nil).List(currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// GetIssue returns an issue with its papers in position order
func GetIssue(c *gin.Context) {
	svc := services.NewIssueService(nil)

	issue, err := svc.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	papers, err := svc.Papers(issue.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issue": issue, "papers": papers})
}

type AddPaperRequest struct {
	PaperID string `json:"paper_id" binding:"required"`
}

// AddPaperToIssue links a paper to an issue at the next position
func AddPaperToIssue(c *gin.Context) {
	var req AddPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := services.NewIssueService(nil).AddPaper(c.Param("id"), req.PaperID, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "issue_paper": link})
}

// PublishIssue flips an issue and its linked papers to published
func PublishIssue(c *gin.Context) {
	result, err := services.NewIssueService(nil).Publish(c.Param("id"), currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if result.AlreadyPublished {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue already published", "issue": result.Issue})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"issue":             result.Issue,
		"updated_paper_ids": result.UpdatedPaperIDs,
	})
}

// GetIssueCandidates lists accepted papers not yet in the issue
func GetIssueCandidates(c *gin.Context) {
	papers, err := services.NewIssueService(nil).Candidates(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"papers": papers})
}
