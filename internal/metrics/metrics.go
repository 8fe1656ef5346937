// Package metrics exposes the side channel through which masked failures
// (synthetic identities, empty fallbacks, dropped comments) stay observable.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IdentityResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nardchat",
		Name:      "identity_resolutions_total",
		Help:      "Wallet identity resolutions by the source that produced the identity.",
	}, []string{"source"})

	CommentTreeOrphans = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nardchat",
		Name:      "comment_tree_orphans_total",
		Help:      "Comments whose parent was missing from the fetched set.",
	})

	StoreFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nardchat",
		Name:      "store_fallbacks_total",
		Help:      "Store reads that failed and were answered with a degraded result.",
	}, []string{"query"})
)
