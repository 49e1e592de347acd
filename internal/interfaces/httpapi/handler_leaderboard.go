package httpapi

import (
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/bracketworks/bracketboard/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	var season *int
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: season must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		season = &parsed
	}

	board, err := h.leaderboardService.Build(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "build leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) ListSeasonLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonLeaderboards")
	defer span.End()

	boards, err := h.leaderboardService.BuildAllSeasons(ctx, runtime.GOMAXPROCS(0))
	if err != nil {
		h.logger.ErrorContext(ctx, "build season leaderboards failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonLeaderboardDTO, 0, len(boards))
	for _, board := range boards {
		items = append(items, seasonLeaderboardDTO{
			Season: board.Season,
			Board:  leaderboardToDTO(board.Board),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
