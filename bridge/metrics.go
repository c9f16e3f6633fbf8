// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	stageDispatch = "dispatch"
	stageMint     = "mint"
)

type Metrics struct {
	initiatedTransferCount *prometheus.CounterVec
	completedTransferCount *prometheus.CounterVec
	rejectedTransferCount  *prometheus.CounterVec
	stuckTransferCount     *prometheus.CounterVec
}

func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	m := Metrics{
		initiatedTransferCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "initiated_transfer_count",
				Help:      "Number of outbound transfers burned and dispatched",
			},
			[]string{"recipient_chain_id"},
		),
		completedTransferCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completed_transfer_count",
				Help:      "Number of inbound transfers minted",
			},
			[]string{"source_chain_id"},
		),
		rejectedTransferCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_transfer_count",
				Help:      "Number of inbound transfers rejected",
			},
			[]string{"failure_reason"},
		),
		stuckTransferCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stuck_transfer_count",
				Help:      "Number of transfers that need manual remediation",
			},
			[]string{"stage"},
		),
	}

	registerer.MustRegister(m.initiatedTransferCount)
	registerer.MustRegister(m.completedTransferCount)
	registerer.MustRegister(m.rejectedTransferCount)
	registerer.MustRegister(m.stuckTransferCount)

	return &m
}

func (m *Metrics) transferInitiated(recipientChain uint16) {
	m.initiatedTransferCount.WithLabelValues(chainLabel(recipientChain)).Inc()
}

func (m *Metrics) transferCompleted(sourceChain uint16) {
	m.completedTransferCount.WithLabelValues(chainLabel(sourceChain)).Inc()
}

func (m *Metrics) transferRejected(reason string) {
	m.rejectedTransferCount.WithLabelValues(reason).Inc()
}

func (m *Metrics) transferStuck(stage string) {
	m.stuckTransferCount.WithLabelValues(stage).Inc()
}

func chainLabel(chainID uint16) string {
	return strconv.FormatUint(uint64(chainID), 10)
}
