package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/slidearcade/puzzle-api/internal/api/metrics"
	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// ScoreHandler handles score submission and the caller's own standing.
type ScoreHandler struct {
	scores      ports.ScoreService
	leaderboard ports.LeaderboardService
}

func NewScoreHandler(scores ports.ScoreService, leaderboard ports.LeaderboardService) *ScoreHandler {
	return &ScoreHandler{scores: scores, leaderboard: leaderboard}
}

type submitScoreRequest struct {
	// Pointer so a missing field is distinguishable from zero.
	Moves *int `json:"moves" validate:"required"`
}

type scoreBody struct {
	Moves       int    `json:"moves"`
	CompletedAt string `json:"completedAt"`
	Improved    bool   `json:"improved"`
}

type submitScoreResponse struct {
	Message string    `json:"message"`
	Score   scoreBody `json:"score"`
}

type playerScoreBody struct {
	Moves       int    `json:"moves"`
	CompletedAt string `json:"completedAt"`
	Rank        int64  `json:"rank"`
}

type playerScoreResponse struct {
	HasScore bool             `json:"hasScore"`
	Score    *playerScoreBody `json:"score,omitempty"`
}

// Submit records a completed game for the authenticated player.
//
// @Summary      Submit a completed game's move count
// @Tags         scores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitScoreRequest  true  "Final move count"
// @Success      200   {object}  submitScoreResponse  "Existing record kept or improved"
// @Success      201   {object}  submitScoreResponse  "First score recorded"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /scores [post]
func (h *ScoreHandler) Submit(c echo.Context) error {
	playerID, err := ctxPlayerID(c)
	if err != nil {
		return err
	}

	var req submitScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	start := time.Now()
	result, err := h.scores.Submit(c.Request().Context(), playerID, *req.Moves)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMoves):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrPlayerNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	metrics.ScoreSubmitDuration.Observe(time.Since(start).Seconds())

	status := http.StatusOK
	message := "Score not improved"
	outcome := "unchanged"
	switch {
	case result.Created:
		status = http.StatusCreated
		message = "Score recorded"
		outcome = "created"
	case result.Improved:
		message = "New best score"
		outcome = "improved"
	}
	metrics.ScoresSubmittedTotal.WithLabelValues(outcome).Inc()

	return c.JSON(status, submitScoreResponse{
		Message: message,
		Score: scoreBody{
			Moves:       result.Moves,
			CompletedAt: result.CompletedAt.UTC().Format(time.RFC3339),
			Improved:    result.Improved,
		},
	})
}

// UserScore returns the authenticated player's best score and global rank.
//
// @Summary      Get the caller's best score and rank
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  playerScoreResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /user/score [get]
func (h *ScoreHandler) UserScore(c echo.Context) error {
	playerID, err := ctxPlayerID(c)
	if err != nil {
		return err
	}

	rank, err := h.leaderboard.GetPlayerRank(c.Request().Context(), playerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	resp := playerScoreResponse{HasScore: rank.HasScore}
	if rank.HasScore {
		resp.Score = &playerScoreBody{
			Moves:       rank.Moves,
			CompletedAt: rank.CompletedAt.UTC().Format(time.RFC3339),
			Rank:        rank.Rank,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
