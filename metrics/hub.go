package metrics

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HubMetrics struct {
	Registry                  *prometheus.Registry
	OperationsCounterVec      *prometheus.CounterVec
	FailedOperationsCounter   *prometheus.CounterVec
	MintedStakeCounter        prometheus.Counter
	BurnedStakeCounter        prometheus.Counter
	StrayStakeBurnedCounter   prometheus.Counter
	RefundedTokenCounter      prometheus.Counter
	ProtocolFeeCounter        prometheus.Counter
	ReconciledBatchesCounter  prometheus.Counter
	ReconciliationDeficitHist prometheus.Histogram
	SubmittedBatchGauge       prometheus.Gauge
}

func NewHubMetrics() *HubMetrics {
	return newHubMetrics(prometheus.NewRegistry())
}

func newHubMetrics(registry *prometheus.Registry) *HubMetrics {
	registerer := promauto.With(registry)

	return &HubMetrics{
		Registry: registry,
		OperationsCounterVec: registerer.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lsthub_operations",
				Help: "The total number of successfully executed hub operations",
			},
			[]string{
				// the message type of the operation
				"type",
			},
		),
		FailedOperationsCounter: registerer.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lsthub_failed_operations",
				Help: "The total number of hub operations that were rejected",
			},
			[]string{
				// the message type of the operation
				"type",
				// the error kind of the rejection
				"kind",
			},
		),
		MintedStakeCounter: registerer.NewCounter(prometheus.CounterOpts{
			Name: "lsthub_minted_stake",
			Help: "The total amount of stake token minted",
		}),
		BurnedStakeCounter: registerer.NewCounter(prometheus.CounterOpts{
			Name: "lsthub_burned_stake",
			Help: "The total amount of stake token burned by submitted batches",
		}),
		StrayStakeBurnedCounter: registerer.NewCounter(prometheus.CounterOpts{
			Name: "lsthub_stray_stake_burned",
			Help: "The total amount of stake token received by the hub and burned",
		}),
		RefundedTokenCounter: registerer.NewCounter(prometheus.CounterOpts{
			Name: "lsthub_refunded_token",
			Help: "The total amount of base token paid out to unbonded users",
		}),
		ProtocolFeeCounter: registerer.NewCounter(prometheus.CounterOpts{
			Name: "lsthub_protocol_fee",
			Help: "The total amount of base token sent to the fee recipient",
		}),
		ReconciledBatchesCounter: registerer.NewCounter(prometheus.CounterOpts{
			Name: "lsthub_reconciled_batches",
			Help: "The total number of batches marked reconciled",
		}),
		ReconciliationDeficitHist: registerer.NewHistogram(prometheus.HistogramOpts{
			Name:    "lsthub_reconciliation_deficit",
			Help:    "The base token deducted from batches per reconciliation",
			Buckets: prometheus.ExponentialBuckets(1, 10, 12),
		}),
		SubmittedBatchGauge: registerer.NewGauge(prometheus.GaugeOpts{
			Name: "lsthub_last_submitted_batch",
			Help: "The id of the last submitted unbonding batch",
		}),
	}
}

// AmountToFloat converts an amount for use as a metric value.
func AmountToFloat(v sdkmath.Uint) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
