package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/result"
)

func TestResultRepository_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewResultRepository(t.TempDir())
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty results, got %d", len(got))
	}
}

func TestResultRepository_MalformedFileFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "results.json"), []byte(`{"not":"an array"}`), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	repo := NewResultRepository(dir)
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatalf("expected decode error for non-array file")
	}
}

func TestResultRepository_AppendDedupesAndPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	repo := NewResultRepository(dir)

	appended, err := repo.Append(ctx, []result.Result{
		{PlayerID: "p_mango", EventID: "t_1", Placement: 1},
		{PlayerID: "p_zain", EventID: "t_1", Placement: 2},
	})
	if err != nil {
		t.Fatalf("first Append error: %v", err)
	}
	if appended != 2 {
		t.Fatalf("expected 2 appended, got %d", appended)
	}

	appended, err = repo.Append(ctx, []result.Result{
		{PlayerID: "p_mango", EventID: "t_1", Placement: 9},
		{PlayerID: "p_mango", EventID: "t_2", Placement: 3},
	})
	if err != nil {
		t.Fatalf("second Append error: %v", err)
	}
	if appended != 1 {
		t.Fatalf("expected 1 appended on duplicate key, got %d", appended)
	}

	// Reopen to prove durability.
	reopened := NewResultRepository(dir)
	got, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].PlayerID != "p_mango" || got[0].Placement != 1 {
		t.Fatalf("duplicate append must not overwrite, got %+v", got[0])
	}
}

func TestResultRepository_ReplaceForEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewResultRepository(t.TempDir())

	if _, err := repo.Append(ctx, []result.Result{
		{PlayerID: "p_a", EventID: "t_1", Placement: 1},
		{PlayerID: "p_b", EventID: "t_1", Placement: 2},
		{PlayerID: "p_c", EventID: "t_2", Placement: 1},
	}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	removed, appended, err := repo.ReplaceForEvent(ctx, "t_1", []result.Result{
		{PlayerID: "p_a", EventID: "t_1", Placement: 4},
	})
	if err != nil {
		t.Fatalf("ReplaceForEvent error: %v", err)
	}
	if removed != 2 || appended != 1 {
		t.Fatalf("unexpected counts removed=%d appended=%d", removed, appended)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results after replace, got %d", len(got))
	}
	for _, item := range got {
		if item.EventID == "t_1" && item.Placement != 4 {
			t.Fatalf("expected reimported placement 4, got %+v", item)
		}
	}
}

func TestEventRepository_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewEventRepository(t.TempDir())

	created, err := repo.Upsert(ctx, event.Event{ID: "t_1", Slug: "tournament/genesis-9/event/melee-singles", Season: 1, Tier: "P"})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if !created {
		t.Fatalf("expected created on first upsert")
	}

	created, err = repo.Upsert(ctx, event.Event{ID: "t_1", Slug: "tournament/genesis-9/event/melee-singles", Season: 1, Tier: "S"})
	if err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}
	if created {
		t.Fatalf("expected update on second upsert")
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Tier != "S" {
		t.Fatalf("unexpected events after upsert: %+v", got)
	}
}
