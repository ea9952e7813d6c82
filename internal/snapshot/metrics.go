package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_stores_loaded_total",
		Help: "Snapshot store files read from disk",
	})
	snapshotsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_stores_saved_total",
		Help: "Snapshot store files written to disk",
	})
	snapshotsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshots_inserted_total",
		Help: "New snapshots captured into player stores",
	})
	fetchesDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stat_fetches_deduplicated_total",
		Help: "Concurrent current-stats fetches coalesced per player",
	})
)
