package result

import "testing"

func TestMergeAppend_SkipsExistingKeys(t *testing.T) {
	t.Parallel()

	existing := []Result{
		{PlayerID: "p_mango", EventID: "t_1", Placement: 1},
	}
	incoming := []Result{
		{PlayerID: "p_mango", EventID: "t_1", Placement: 5},
		{PlayerID: "p_zain", EventID: "t_1", Placement: 2},
		{PlayerID: "p_zain", EventID: "t_1", Placement: 3},
	}

	merged, appended := MergeAppend(existing, incoming)
	if appended != 1 {
		t.Fatalf("expected 1 appended, got %d", appended)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged results, got %d", len(merged))
	}
	if merged[0].Placement != 1 {
		t.Fatalf("existing result must keep its placement, got %d", merged[0].Placement)
	}
	if merged[1].PlayerID != "p_zain" || merged[1].Placement != 2 {
		t.Fatalf("unexpected appended result: %+v", merged[1])
	}
}

func TestDropEvent(t *testing.T) {
	t.Parallel()

	results := []Result{
		{PlayerID: "p_a", EventID: "t_1", Placement: 1},
		{PlayerID: "p_b", EventID: "t_2", Placement: 2},
		{PlayerID: "p_c", EventID: "t_1", Placement: 3},
	}

	kept, removed := DropEvent(results, "t_1")
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if len(kept) != 1 || kept[0].EventID != "t_2" {
		t.Fatalf("unexpected kept results: %+v", kept)
	}
}
