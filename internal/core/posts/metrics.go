package posts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_like_toggles_total",
		Help: "Like toggles applied, by direction.",
	}, []string{"action"})

	commentOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_comment_operations_total",
		Help: "Comments added and removed.",
	}, []string{"op"})

	mutationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posts_mutation_conflicts_total",
		Help: "Conditional saves that lost a race and were retried or given up.",
	})
)
