// Package metrics defines and registers all custom Prometheus metrics for the
// puzzle API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics register with the default Prometheus registry at init time and
// are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "puzzle"

// ── Identity metrics ──────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "invalid", or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "not_found"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Score metrics ─────────────────────────────────────────────────────────────

// ScoresSubmittedTotal counts score submissions that reached the ledger.
// Label:
//   - outcome: "created" (first score), "improved", or "unchanged"
var ScoresSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_submitted_total",
		Help:      "Total number of score submissions, by ledger outcome.",
	},
	[]string{"outcome"},
)

// ScoreSubmitDuration measures a submission end-to-end, including the
// conditional write to storage.
var ScoreSubmitDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "score_submit_duration_seconds",
		Help:      "Duration of score submissions from request to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Leaderboard metrics ───────────────────────────────────────────────────────

// LeaderboardRequestsTotal counts leaderboard pages served.
var LeaderboardRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_requests_total",
		Help:      "Total number of leaderboard pages served.",
	},
)

// ── Game session metrics ──────────────────────────────────────────────────────

// GamesSolvedTotal counts server-side sessions that reached the solved state.
var GamesSolvedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_solved_total",
		Help:      "Total number of play sessions that solved the puzzle.",
	},
)
