package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestDeclareRequiresIdentifiers(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewCOIService(db)

	_, err := svc.Declare("paper-1", "", "reviewer", "worked together")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestDeclareTrimsStatement(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `coi_declarations`"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewCOIService(db)

	declaration, err := svc.Declare("paper-1", "rev-1", "reviewer", "  we co-authored in 2024  ")
	if err != nil {
		t.Fatalf("Declare returned error: %v", err)
	}
	if declaration.Statement != "we co-authored in 2024" {
		t.Fatalf("expected trimmed statement, got %q", declaration.Statement)
	}
	if declaration.DeclaredAt == nil {
		t.Fatal("expected declared_at to be stamped")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestHasDeclarationFalseWhenNone(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `coi_declarations` WHERE paper_id = \\? AND user_id = \\?"),
			args:    []driver.Value{"paper-1", "rev-1"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewCOIService(db)

	has, err := svc.HasDeclaration("paper-1", "rev-1")
	if err != nil {
		t.Fatalf("HasDeclaration returned error: %v", err)
	}
	if has {
		t.Fatal("expected no declaration")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestLatestForPairPicksNewestDeclaration(t *testing.T) {
	newest := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `coi_declarations` WHERE paper_id = \\? AND user_id = \\? ORDER BY declared_at DESC LIMIT \\?"),
			args:    []driver.Value{"paper-1", "rev-1", int64(1)},
			columns: []string{"id", "paper_id", "user_id", "role", "statement", "declared_at"},
			rows:    [][]driver.Value{{"coi-2", "paper-1", "rev-1", "reviewer", "updated statement", newest}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewCOIService(db)

	declaration, err := svc.LatestForPair("paper-1", "rev-1")
	if err != nil {
		t.Fatalf("LatestForPair returned error: %v", err)
	}
	if declaration == nil || declaration.ID != "coi-2" {
		t.Fatalf("expected coi-2, got %+v", declaration)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestLatestForPairNilWhenNone(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `coi_declarations` WHERE paper_id = \\? AND user_id = \\? ORDER BY declared_at DESC LIMIT \\?"),
			args:    []driver.Value{"paper-1", "rev-9", int64(1)},
			columns: []string{"id", "paper_id", "user_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewCOIService(db)

	declaration, err := svc.LatestForPair("paper-1", "rev-9")
	if err != nil {
		t.Fatalf("LatestForPair returned error: %v", err)
	}
	if declaration != nil {
		t.Fatalf("expected nil, got %+v", declaration)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
