package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"journal-management-api/models"
)

func TestAssignRequiresEditor(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewAssignmentService(db)

	_, err := svc.Create(&CreateAssignmentInput{PaperID: "paper-1", ReviewerID: "rev-1"}, authorProfile("author-1"))

	var ferr *ForbiddenError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignCreatesAssignmentWithDefaults(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE id = \\?"),
			args:    []driver.Value{"paper-1", int64(1)},
			columns: []string{"id", "title", "status", "created_by"},
			rows:    [][]driver.Value{{"paper-1", "A Study", "submitted", "author-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `profiles` WHERE id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{"rev-1", int64(1)},
			columns: []string{"id", "email", "full_name", "role"},
			rows:    [][]driver.Value{{"rev-1", "rev@example.org", "Rev One", "reviewer"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `review_assignments`"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAssignmentService(db)

	assignment, err := svc.Create(&CreateAssignmentInput{PaperID: "paper-1", ReviewerID: "rev-1"}, editorProfile("editor-1"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if assignment.Status != models.AssignmentStatusAssigned {
		t.Fatalf("expected status assigned, got %q", assignment.Status)
	}
	if assignment.Priority != models.PriorityNormal {
		t.Fatalf("expected priority normal, got %q", assignment.Priority)
	}
	if assignment.AssignedBy != "editor-1" {
		t.Fatalf("expected assigned_by editor-1, got %q", assignment.AssignedBy)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignDuplicateReviewerIsConflict(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE id = \\?"),
			args:    []driver.Value{"paper-1", int64(1)},
			columns: []string{"id", "title", "status", "created_by"},
			rows:    [][]driver.Value{{"paper-1", "A Study", "submitted", "author-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `profiles` WHERE id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{"rev-1", int64(1)},
			columns: []string{"id", "email", "role"},
			rows:    [][]driver.Value{{"rev-1", "rev@example.org", "reviewer"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `review_assignments`"),
			err:     &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'paper-1-rev-1' for key 'uniq_paper_reviewer'"},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAssignmentService(db)

	_, err := svc.Create(&CreateAssignmentInput{PaperID: "paper-1", ReviewerID: "rev-1"}, editorProfile("editor-1"))

	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCandidatesExcludesAssignedReviewers(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE id = \\?"),
			args:    []driver.Value{"paper-1", int64(1)},
			columns: []string{"id", "title", "status", "category_id", "created_by"},
			rows:    [][]driver.Value{{"paper-1", "A Study", "submitted", "cs", "author-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT `reviewer_id` FROM `review_assignments` WHERE paper_id = \\?"),
			args:    []driver.Value{"paper-1"},
			columns: []string{"reviewer_id"},
			rows:    [][]driver.Value{{"rev-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?s)SELECT .* FROM `profiles` WHERE .*role = \\?.*spec = \\?.*id NOT IN.*ORDER BY full_name ASC"),
			args:    []driver.Value{"reviewer", "cs", "rev-1"},
			columns: []string{"id", "email", "full_name", "role", "spec"},
			rows:    [][]driver.Value{{"rev-2", "two@example.org", "Rev Two", "reviewer", "cs"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAssignmentService(db)

	candidates, err := svc.Candidates("paper-1")
	if err != nil {
		t.Fatalf("Candidates returned error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "rev-2" {
		t.Fatalf("expected only rev-2, got %+v", candidates)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestListForReviewerDerivesLateStatus(t *testing.T) {
	overdue := time.Now().Add(-48 * time.Hour)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `review_assignments` WHERE reviewer_id = \\? ORDER BY due_date ASC"),
			args:    []driver.Value{"rev-1"},
			columns: []string{"id", "paper_id", "reviewer_id", "status", "priority", "due_date"},
			rows: [][]driver.Value{
				{"as-1", "paper-1", "rev-1", "assigned", "normal", overdue},
				{"as-2", "paper-1", "rev-1", "submitted", "normal", overdue},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers`"),
			columns: []string{"id", "title", "status", "created_by"},
			rows:    [][]driver.Value{{"paper-1", "A Study", "under_review", "author-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `paper_versions` WHERE paper_id IN \\(\\?\\) ORDER BY version_number DESC"),
			args:    []driver.Value{"paper-1"},
			columns: []string{"id", "paper_id", "version_number", "file_path", "file_mime"},
			rows:    [][]driver.Value{{"ver-2", "paper-1", int64(2), "papers/v2.pdf", "application/pdf"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAssignmentService(db)

	views, err := svc.ListForReviewer("rev-1")
	if err != nil {
		t.Fatalf("ListForReviewer returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(views))
	}
	if views[0].Status != models.AssignmentStatusLate {
		t.Fatalf("expected overdue open assignment to read late, got %q", views[0].Status)
	}
	if views[1].Status != models.AssignmentStatusSubmitted {
		t.Fatalf("expected terminal status untouched, got %q", views[1].Status)
	}
	if views[0].LatestVersion == nil || views[0].LatestVersion.VersionNumber != 2 {
		t.Fatalf("expected latest version 2, got %+v", views[0].LatestVersion)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
