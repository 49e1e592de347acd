package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bracketworks/bracketboard/external/startgg"
	"github.com/bracketworks/bracketboard/internal/usecase"
)

func (h *Handler) ImportEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportEvent")
	defer span.End()

	var req importEventRequest
	if err := decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.importService.ImportEvent(ctx, usecase.ImportEventInput{
		EventSlug: req.Slug,
		Season:    req.Season,
		Tier:      req.Tier,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import event failed", "slug", req.Slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importEventDTO{
		EventID:      out.EventID,
		EventName:    out.EventName,
		EventCreated: out.EventCreated,
		Fetched:      out.Fetched,
		Mapped:       out.Mapped,
		Appended:     out.Appended,
		Unmapped:     unmappedToDTO(out.Unmapped),
		Rebuild:      cacheStatusToDTO(out.Rebuild),
	})
}

func (h *Handler) ReimportEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReimportEvent")
	defer span.End()

	var req reimportEventRequest
	if err := decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.importService.ReimportEvent(ctx, req.Slug)
	if err != nil {
		h.logger.WarnContext(ctx, "reimport event failed", "slug", req.Slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reimportEventDTO{
		EventID:  out.EventID,
		Fetched:  out.Fetched,
		Mapped:   out.Mapped,
		Removed:  out.Removed,
		Appended: out.Appended,
		Unmapped: unmappedToDTO(out.Unmapped),
		Rebuild:  cacheStatusToDTO(out.Rebuild),
	})
}

func (h *Handler) PreviewEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewEvent")
	defer span.End()

	slug, err := h.eventSlugFromQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.importService.PreviewEvent(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "preview event failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	mapped := make([]resultDTO, 0, len(preview.Mapped))
	for _, item := range preview.Mapped {
		mapped = append(mapped, resultDTO{
			PlayerID:  item.PlayerID,
			EventID:   item.EventID,
			Placement: item.Placement,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, eventPreviewDTO{
		EventID:  preview.EventID,
		Fetched:  preview.Fetched,
		Mapped:   mapped,
		Unmapped: unmappedToDTO(preview.Unmapped),
	})
}

func (h *Handler) ListUnmapped(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUnmapped")
	defer span.End()

	slug, err := h.eventSlugFromQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.importService.PreviewEvent(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list unmapped failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unmappedToDTO(preview.Unmapped))
}

func (h *Handler) RebuildCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildCache")
	defer span.End()

	status, started := h.rebuilder.Rebuild(ctx)

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"started": started,
		"status":  cacheStatusToDTO(status),
	})
}

func (h *Handler) ListTournamentEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentEvents")
	defer span.End()

	rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if rawURL == "" {
		writeError(ctx, w, fmt.Errorf("%w: url query parameter is required", usecase.ErrInvalidInput))
		return
	}

	slug, err := startgg.ParseTournamentURL(rawURL)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	tournament, err := h.importService.ListTournamentEvents(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournament events failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(tournament))
}

// eventSlugFromQuery resolves the target event slug for preview routes.
// Callers pass either slug= directly or eventId= referencing the registry.
func (h *Handler) eventSlugFromQuery(ctx context.Context, r *http.Request) (string, error) {
	if slug := strings.TrimSpace(r.URL.Query().Get("slug")); slug != "" {
		return slug, nil
	}

	eventID := strings.TrimSpace(r.URL.Query().Get("eventId"))
	if eventID == "" {
		return "", fmt.Errorf("%w: slug or eventId query parameter is required", usecase.ErrInvalidInput)
	}

	events, err := h.eventService.ListEvents(ctx)
	if err != nil {
		return "", err
	}
	for _, item := range events {
		if item.ID == eventID {
			return item.Slug, nil
		}
	}

	return "", fmt.Errorf("%w: event %s is not registered", usecase.ErrNotFound, eventID)
}
