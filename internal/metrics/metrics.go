// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expenseflow"

var (
	// ExpensesCreated counts successfully created expenses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Number of expenses created.",
	})

	// ExpenseMutations counts update and delete attempts by outcome.
	ExpenseMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expense_mutations_total",
		Help:      "Expense updates and deletes by operation and result.",
	}, []string{"operation", "result"})

	// StatusTransitions counts share status change requests.
	// result is one of accepted, rejected, invalid_state, error.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Participant status change requests by source status, target status and result.",
	}, []string{"from", "to", "result"})

	// RPCDuration observes handler latency per procedure and connect code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})
)
