package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrBadRequest = errors.New("bad request")

type gameManager interface {
	CreateSession(ctx context.Context, boardSize int, showStoneColors bool) (string, entity.GameState, error)
	GetState(ctx context.Context, id string) (entity.GameState, error)
	Place(ctx context.Context, id string, row, col int) (bool, entity.GameState, error)
	Undo(ctx context.Context, id string) (bool, entity.GameState, error)
	Reset(ctx context.Context, id string) (entity.GameState, error)
	ToggleShowStoneColors(ctx context.Context, id string) (entity.GameState, error)
	DeleteSession(ctx context.Context, id string) error
}

// Defaults apply to new sessions when the request leaves a field out.
type Defaults struct {
	BoardSize       int
	ShowStoneColors bool
}

type Handlers interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
	Place(w http.ResponseWriter, r *http.Request)
	Undo(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	ToggleShowStoneColors(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger   *slog.Logger
	manager  gameManager
	defaults Defaults
}

func NewHandlers(logger *slog.Logger, manager gameManager, defaults Defaults) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		manager:  manager,
		defaults: defaults,
	}
}

type createSessionRequest struct {
	BoardSize       *int  `json:"board_size"`
	ShowStoneColors *bool `json:"show_stone_colors"`
}

type createSessionResponse struct {
	ID    string           `json:"id"`
	State entity.GameState `json:"state"`
}

type placeRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type placeResponse struct {
	Placed bool             `json:"placed"`
	State  entity.GameState `json:"state"`
}

type undoResponse struct {
	Undone bool             `json:"undone"`
	State  entity.GameState `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req, true); err != nil {
		that.writeError(w, err)
		return
	}

	boardSize := that.defaults.BoardSize
	if req.BoardSize != nil {
		boardSize = *req.BoardSize
	}

	showStoneColors := that.defaults.ShowStoneColors
	if req.ShowStoneColors != nil {
		showStoneColors = *req.ShowStoneColors
	}

	id, state, err := that.manager.CreateSession(r.Context(), boardSize, showStoneColors)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, createSessionResponse{ID: id, State: state})
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := that.manager.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, state)
}

func (that *handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) Place(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decodeBody(r, &req, false); err != nil {
		that.writeError(w, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, fmt.Errorf("%w: row and col are required", ErrBadRequest))
		return
	}

	placed, state, err := that.manager.Place(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, placeResponse{Placed: placed, State: state})
}

func (that *handlers) Undo(w http.ResponseWriter, r *http.Request) {
	undone, state, err := that.manager.Undo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, undoResponse{Undone: undone, State: state})
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := that.manager.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, state)
}

func (that *handlers) ToggleShowStoneColors(w http.ResponseWriter, r *http.Request) {
	state, err := that.manager.ToggleShowStoneColors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, state)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})

		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, apperror.ErrInvalidBoardSize):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into dst. An empty body is accepted only when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: invalid json: %w", ErrBadRequest, err)
	}

	return nil
}
