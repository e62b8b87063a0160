package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"journal-management-api/models"
)

// Walks a paper through the editorial tail end: accept decision, issue
// linkage, issue publish.
func TestAcceptThenPublishLifecycle(t *testing.T) {
	steps := []*queryStep{
		// decision
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE id = \\?"),
			args:    []driver.Value{"paper-1", int64(1)},
			columns: []string{"id", "title", "status", "created_by"},
			rows:    [][]driver.Value{{"paper-1", "A Study", "under_review", "author-1"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `papers` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
		// issue linkage
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE id = \\?"),
			args:    []driver.Value{"paper-1", int64(1)},
			columns: []string{"id", "title", "status", "created_by"},
			rows:    [][]driver.Value{{"paper-1", "A Study", "accepted", "author-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `issues` WHERE id = \\?"),
			args:    []driver.Value{"issue-1", int64(1)},
			columns: []string{"id", "title", "slug", "published"},
			rows:    [][]driver.Value{{"issue-1", "Vol 1", "vol-1", int64(0)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(MAX\(position\), 0\) FROM .issue_papers. WHERE issue_id = \?`),
			args:    []driver.Value{"issue-1"},
			columns: []string{"max"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `issue_papers`"),
			result:  scriptedResult{rowsAffected: 1},
		},
		// publish
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `issues` WHERE id = \\?"),
			args:    []driver.Value{"issue-1", int64(1)},
			columns: []string{"id", "title", "slug", "published"},
			rows:    [][]driver.Value{{"issue-1", "Vol 1", "vol-1", int64(0)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT `paper_id` FROM `issue_papers` WHERE issue_id = \\?"),
			args:    []driver.Value{"issue-1"},
			columns: []string{"paper_id"},
			rows:    [][]driver.Value{{"paper-1"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `issues` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `papers` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	editor := editorProfile("editor-1")

	paper, err := NewDecisionService(db).Decide("paper-1", DecisionApprove, editor)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if paper.Status != models.PaperStatusAccepted {
		t.Fatalf("expected accepted after approval, got %q", paper.Status)
	}

	issues := NewIssueService(db)

	link, err := issues.AddPaper("issue-1", "paper-1", editor)
	if err != nil {
		t.Fatalf("AddPaper returned error: %v", err)
	}
	if link.Position != 1 {
		t.Fatalf("expected first position, got %d", link.Position)
	}

	result, err := issues.Publish("issue-1", editor)
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if !result.Issue.Published {
		t.Fatal("expected issue published")
	}
	if len(result.UpdatedPaperIDs) != 1 || result.UpdatedPaperIDs[0] != "paper-1" {
		t.Fatalf("expected paper-1 published, got %v", result.UpdatedPaperIDs)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
