package usecase

import (
	"testing"

	"github.com/bracketworks/bracketboard/internal/domain/player"
)

func TestNormalizeStandingsPartitionsEveryNode(t *testing.T) {
	t.Parallel()

	index := map[int64]string{
		101: "p_zenith",
		102: "p_karma",
	}
	placements := []ExternalPlacement{
		{Placement: 1, PlayerExternalID: int64Ptr(101), PlayerTag: "Zenith"},
		{Placement: 2, PlayerExternalID: int64Ptr(999), PlayerTag: "Stranger"},
		{Placement: 3, PlayerExternalID: int64Ptr(102), PlayerTag: "Karma"},
		{Placement: 4, EntrantName: "Anon"},
	}

	mapped, unmapped := normalizeStandings("t_42", placements, index)

	if len(mapped)+len(unmapped) != len(placements) {
		t.Fatalf("partition lost nodes: mapped=%d unmapped=%d want total %d", len(mapped), len(unmapped), len(placements))
	}
	if len(mapped) != 2 {
		t.Fatalf("mapped = %d, want 2", len(mapped))
	}
	if mapped[0].PlayerID != "p_zenith" || mapped[0].EventID != "t_42" || mapped[0].Placement != 1 {
		t.Fatalf("unexpected first mapped result: %+v", mapped[0])
	}
	if mapped[1].PlayerID != "p_karma" || mapped[1].Placement != 3 {
		t.Fatalf("unexpected second mapped result: %+v", mapped[1])
	}

	if len(unmapped) != 2 {
		t.Fatalf("unmapped = %d, want 2", len(unmapped))
	}
	if unmapped[0].Placement != 2 || unmapped[0].ExternalID == nil || *unmapped[0].ExternalID != 999 {
		t.Fatalf("unexpected first unmapped entry: %+v", unmapped[0])
	}
	if unmapped[1].Placement != 4 || unmapped[1].ExternalID != nil {
		t.Fatalf("unexpected second unmapped entry: %+v", unmapped[1])
	}
}

func TestNormalizeStandingsEmptyInput(t *testing.T) {
	t.Parallel()

	mapped, unmapped := normalizeStandings("t_1", nil, map[int64]string{})
	if len(mapped) != 0 || len(unmapped) != 0 {
		t.Fatalf("expected empty partitions, got mapped=%d unmapped=%d", len(mapped), len(unmapped))
	}
}

func TestDisplayTagFallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		placement ExternalPlacement
		want      string
	}{
		{
			name:      "player tag wins",
			placement: ExternalPlacement{PlayerTag: "Zenith", ParticipantTag: "ZTH", EntrantName: "Team | Zenith"},
			want:      "Zenith",
		},
		{
			name:      "participant tag next",
			placement: ExternalPlacement{ParticipantTag: "ZTH", EntrantName: "Team | Zenith"},
			want:      "ZTH",
		},
		{
			name:      "entrant name last",
			placement: ExternalPlacement{EntrantName: "Team | Zenith"},
			want:      "Team | Zenith",
		},
		{
			name:      "nothing available",
			placement: ExternalPlacement{},
			want:      "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := displayTag(tc.placement); got != tc.want {
				t.Fatalf("displayTag = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildIdentityIndexLastWriteWins(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{ID: "p_zenith", Tag: "Zenith", ExternalID: int64Ptr(101)},
		{ID: "p_noext", Tag: "NoExt"},
		{ID: "p_zenith_2", Tag: "Zenith", ExternalID: int64Ptr(101)},
		{ID: "p_karma", Tag: "Karma", ExternalID: int64Ptr(102)},
	}

	index := buildIdentityIndex(players)

	if len(index) != 2 {
		t.Fatalf("index size = %d, want 2", len(index))
	}
	if index[101] != "p_zenith_2" {
		t.Fatalf("index[101] = %q, want later entry p_zenith_2", index[101])
	}
	if index[102] != "p_karma" {
		t.Fatalf("index[102] = %q, want p_karma", index[102])
	}
}

func TestDuplicateExternalIDs(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{ID: "p_zenith", ExternalID: int64Ptr(101)},
		{ID: "p_zenith_2", ExternalID: int64Ptr(101)},
		{ID: "p_karma", ExternalID: int64Ptr(102)},
		{ID: "p_noext"},
	}

	duplicates := duplicateExternalIDs(players)

	if len(duplicates) != 1 {
		t.Fatalf("duplicates = %d entries, want 1", len(duplicates))
	}
	ids, ok := duplicates[101]
	if !ok || len(ids) != 2 {
		t.Fatalf("duplicates[101] = %v, want two claimants", ids)
	}
}
