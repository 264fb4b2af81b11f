package indexing

import (
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	targetSegments = "segments"
	targetContent  = "content_items"
)

// syncedTotal counts rows handled by embedding syncs.
// Labels: target (segments, content_items), result (success, failed)
var syncedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "lifebook",
		Subsystem: "embedding_sync",
		Name:      "rows_total",
		Help:      "Total number of rows processed by embedding syncs",
	},
	[]string{"target", "result"},
)

func observeSync(target string, r *entity.SyncResult) {
	syncedTotal.WithLabelValues(target, "success").Add(float64(r.Success))
	syncedTotal.WithLabelValues(target, "failed").Add(float64(r.Failed))
}
