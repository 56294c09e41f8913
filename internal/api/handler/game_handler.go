package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slidearcade/puzzle-api/internal/api/metrics"
	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// GameHandler exposes server-side play sessions. Sessions are anonymous;
// only score submission requires a credential.
type GameHandler struct {
	games ports.GameService
}

func NewGameHandler(games ports.GameService) *GameHandler {
	return &GameHandler{games: games}
}

type clickRequest struct {
	// Pointer so index 0 is distinguishable from a missing field.
	Index *int `json:"index" validate:"required"`
}

type sessionResponse struct {
	ID            string `json:"id"`
	Grid          []int  `json:"grid"`
	SelectedIndex int    `json:"selectedIndex"`
	MoveCount     int    `json:"moveCount"`
	Solved        bool   `json:"solved"`
}

func toSessionResponse(s *domain.GameSession) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		Grid:          s.Puzzle.Grid[:],
		SelectedIndex: s.Puzzle.SelectedIndex,
		MoveCount:     s.Puzzle.MoveCount,
		Solved:        s.Puzzle.Solved,
	}
}

// Create starts a new play session from the fixed initial layout.
//
// @Summary      Start a new game session
// @Tags         game
// @Produce      json
// @Success      201  {object}  sessionResponse
// @Failure      500  {object}  errorResponse
// @Router       /game/sessions [post]
func (h *GameHandler) Create(c echo.Context) error {
	session, err := h.games.CreateSession(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Get returns the current state of a session.
//
// @Summary      Get a game session
// @Tags         game
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      404  {object}  errorResponse
// @Router       /game/sessions/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	session, err := h.games.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Click applies one select-or-swap to the session.
//
// @Summary      Click a cell
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Session id"
// @Param        body  body      clickRequest  true  "Cell index 0-8"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /game/sessions/{id}/click [post]
func (h *GameHandler) Click(c echo.Context) error {
	var req clickRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	session, result, err := h.games.Click(c.Request().Context(), c.Param("id"), *req.Index)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return h.sessionError(c, err)
	}

	if result.Solved {
		metrics.GamesSolvedTotal.Inc()
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Reset restores the session to the initial layout.
//
// @Summary      Reset a game session
// @Tags         game
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      404  {object}  errorResponse
// @Router       /game/sessions/{id}/reset [post]
func (h *GameHandler) Reset(c echo.Context) error {
	session, err := h.games.ResetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *GameHandler) sessionError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
