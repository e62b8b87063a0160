package controllers

import (
	"net/http"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

type SubmitPaperRequest struct {
	Title       string  `json:"title" binding:"required"`
	Abstract    *string `json:"abstract"`
	Keywords    *string `json:"keywords"`
	CategoryID  *string `json:"category_id"`
	StoragePath *string `json:"storage_path"`
	FileMime    *string `json:"file_mime"`
}

// SubmitPaper creates a paper with its first version
func SubmitPaper(c *gin.Context) {
	var req SubmitPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := services.NewSubmissionService(nil).SubmitPaper(&services.SubmitPaperInput{
		Title:       req.Title,
		Abstract:    req.Abstract,
		Keywords:    req.Keywords,
		CategoryID:  req.CategoryID,
		StoragePath: req.StoragePath,
		FileMime:    req.FileMime,
	}, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "paper": paper})
}

// GetPapers lists the caller's submissions (all papers for editors)
func GetPapers(c *gin.Context) {
	papers, err := services.NewSubmissionService(nil).ListPapers(currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"papers": papers})
}

// GetPaper returns one paper with its versions
func GetPaper(c *gin.Context) {
	svc := services.NewSubmissionService(nil)

	paper, err := svc.GetPaper(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	versions, err := svc.ListVersions(paper.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paper": paper, "versions": versions})
}

type AddVersionRequest struct {
	StoragePath string  `json:"storage_path" binding:"required"`
	FileMime    *string `json:"file_mime"`
	Notes       *string `json:"notes"`
}

// AddVersion uploads a new revision of a paper
func AddVersion(c *gin.Context) {
	var req AddVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.NewSubmissionService(nil).AddVersion(c.Param("id"), &services.AddVersionInput{
		StoragePath: req.StoragePath,
		FileMime:    req.FileMime,
		Notes:       req.Notes,
	}, currentProfile(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := gin.H{"ok": true, "version": result.Version}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}
	c.JSON(http.StatusCreated, response)
}

// GetVersions lists a paper's versions, newest first
func GetVersions(c *gin.Context) {
	svc := services.NewSubmissionService(nil)

	paper, err := svc.GetPaper(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	versions, err := svc.ListVersions(paper.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

// GetPublished lists published papers with their current manuscript,
// for the public archive
func GetPublished(c *gin.Context) {
	svc := services.NewSubmissionService(nil)

	papers, err := svc.ListPublished()
	if err != nil {
		abortWithError(c, err)
		return
	}

	type publishedPaper struct {
		ID            string      `json:"id"`
		Title         string      `json:"title"`
		Abstract      *string     `json:"abstract,omitempty"`
		PublishedDate interface{} `json:"published_date,omitempty"`
		FilePath      string      `json:"file_path,omitempty"`
	}

	out := make([]publishedPaper, 0, len(papers))
	for _, p := range papers {
		entry := publishedPaper{
			ID:            p.ID,
			Title:         p.Title,
			Abstract:      p.Abstract,
			PublishedDate: p.PublishedDate,
		}
		if v, err := svc.LatestVersion(p.ID); err == nil && v != nil {
			entry.FilePath = v.FilePath
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"papers": out})
}
