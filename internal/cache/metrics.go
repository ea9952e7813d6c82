package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leaderboardHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_hits_total",
		Help: "Leaderboard lookups served from cache",
	})
	leaderboardMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_misses_total",
		Help: "Leaderboard lookups that missed or were stale",
	})
	searchHistoryHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_history_cache_hits_total",
		Help: "Search-history lookups served from memory",
	})
	searchHistoryMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_history_cache_misses_total",
		Help: "Search-history lookups that fell back to disk or a fresh entry",
	})
	searchHistoryFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_history_flushes_total",
		Help: "Evicted search histories written to disk",
	})
)
