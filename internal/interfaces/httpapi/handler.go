package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/bracketworks/bracketboard/internal/platform/logging"
	"github.com/bracketworks/bracketboard/internal/usecase"
)

type Handler struct {
	leaderboardService *usecase.LeaderboardService
	playerService      *usecase.PlayerService
	eventService       *usecase.EventService
	importService      *usecase.ImportService
	rebuilder          usecase.CacheRebuilder
	resultsCache       *usecase.ResultsCache
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	leaderboardService *usecase.LeaderboardService,
	playerService *usecase.PlayerService,
	eventService *usecase.EventService,
	importService *usecase.ImportService,
	rebuilder usecase.CacheRebuilder,
	resultsCache *usecase.ResultsCache,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leaderboardService: leaderboardService,
		playerService:      playerService,
		eventService:       eventService,
		importService:      importService,
		rebuilder:          rebuilder,
		resultsCache:       resultsCache,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeRequest(body io.Reader, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
