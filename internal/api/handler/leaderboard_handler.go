package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/slidearcade/puzzle-api/internal/api/metrics"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// LeaderboardHandler serves the ranked leaderboard and the summary stats.
type LeaderboardHandler struct {
	leaderboard ports.LeaderboardService
	stats       ports.StatsService
}

func NewLeaderboardHandler(leaderboard ports.LeaderboardService, stats ports.StatsService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard, stats: stats}
}

type leaderboardEntryResponse struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Moves int    `json:"moves"`
	// CompletedDate is the UTC calendar date of the best completion.
	CompletedDate string `json:"completedDate"`
}

type paginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalScores int64 `json:"totalScores"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type leaderboardResponse struct {
	Leaderboard []leaderboardEntryResponse `json:"leaderboard"`
	Pagination  paginationResponse         `json:"pagination"`
}

type statsResponse struct {
	TotalUsers     int64   `json:"totalUsers"`
	TotalScores    int64   `json:"totalScores"`
	AverageMoves   float64 `json:"averageMoves"`
	BestScore      int     `json:"bestScore"`
	WorstScore     int     `json:"worstScore"`
	CompletionRate int     `json:"completionRate"`
}

// Leaderboard returns one page of the global ranking.
//
// @Summary      Get the ranked leaderboard
// @Tags         leaderboard
// @Produce      json
// @Param        page   query     int  false  "1-based page (default 1)"
// @Param        limit  query     int  false  "page size (default 50, max 100)"
// @Success      200    {object}  leaderboardResponse
// @Failure      500    {object}  errorResponse
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) Leaderboard(c echo.Context) error {
	page := queryInt(c, "page")
	limit := queryInt(c, "limit")

	result, err := h.leaderboard.GetLeaderboard(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	metrics.LeaderboardRequestsTotal.Inc()

	entries := make([]leaderboardEntryResponse, len(result.Entries))
	for i, e := range result.Entries {
		entries[i] = leaderboardEntryResponse{
			Rank:          e.Rank,
			Name:          e.Name,
			Email:         e.Email,
			Moves:         e.Moves,
			CompletedDate: e.CompletedAt.UTC().Format("2006-01-02"),
		}
	}

	return c.JSON(http.StatusOK, leaderboardResponse{
		Leaderboard: entries,
		Pagination: paginationResponse{
			CurrentPage: result.Pagination.CurrentPage,
			TotalPages:  result.Pagination.TotalPages,
			TotalScores: result.Pagination.TotalScores,
			HasNext:     result.Pagination.HasNext,
			HasPrev:     result.Pagination.HasPrev,
		},
	})
}

// Stats returns summary metrics over all players and scores.
//
// @Summary      Get summary statistics
// @Tags         leaderboard
// @Produce      json
// @Success      200  {object}  statsResponse
// @Failure      500  {object}  errorResponse
// @Router       /stats [get]
func (h *LeaderboardHandler) Stats(c echo.Context) error {
	stats, err := h.stats.GetStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, statsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalScores:    stats.TotalScores,
		AverageMoves:   stats.AverageMoves,
		BestScore:      stats.BestScore,
		WorstScore:     stats.WorstScore,
		CompletionRate: stats.CompletionRate,
	})
}

// queryInt parses a query parameter, returning 0 for absent or unparseable
// values so the service applies its defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
