package httpapi

import (
	"net/http"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.eventService.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetResultsSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetResultsSummary")
	defer span.End()

	summary, err := h.eventService.ResultsSummary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "results summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	events := make([]eventResultCountDTO, 0, len(summary.Events))
	for _, item := range summary.Events {
		events = append(events, eventResultCountDTO{
			EventID: item.EventID,
			Name:    item.Name,
			Season:  item.Season,
			Results: item.Results,
		})
	}

	duplicates := make([]duplicateExternalIDDTO, 0, len(summary.Duplicates))
	for _, item := range summary.Duplicates {
		duplicates = append(duplicates, duplicateExternalIDDTO{
			ExternalID: item.ExternalID,
			PlayerIDs:  item.PlayerIDs,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, resultsSummaryDTO{
		TotalResults: summary.TotalResults,
		Events:       events,
		Duplicates:   duplicates,
	})
}

func (h *Handler) GetCacheStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCacheStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, cacheStatusToDTO(h.resultsCache.Status()))
}
