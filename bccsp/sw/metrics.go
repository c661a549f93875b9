/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"strconv"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/hyperledger/fabric-rijndael/common/metrics"
)

var (
	operationsCounterOpts = metrics.CounterOpts{
		Namespace:  "bccsp",
		Subsystem:  "sw",
		Name:       "operations",
		Help:       "The number of Rijndael CBC encrypt and decrypt operations.",
		LabelNames: []string{"operation", "padding"},
	}

	operationFailuresCounterOpts = metrics.CounterOpts{
		Namespace:  "bccsp",
		Subsystem:  "sw",
		Name:       "operation_failures",
		Help:       "The number of Rijndael CBC operations that returned an error.",
		LabelNames: []string{"operation", "padding"},
	}

	operationDurationHistogramOpts = metrics.HistogramOpts{
		Namespace:  "bccsp",
		Subsystem:  "sw",
		Name:       "operation_duration",
		Help:       "The time to complete a Rijndael CBC operation, in seconds.",
		LabelNames: []string{"operation", "padding"},
	}

	keysGeneratedCounterOpts = metrics.CounterOpts{
		Namespace:  "bccsp",
		Subsystem:  "sw",
		Name:       "keys_generated",
		Help:       "The number of Rijndael keys generated.",
		LabelNames: []string{"block_size"},
	}
)

// Metrics holds the meters of the software provider.
type Metrics struct {
	Operations        metrics.Counter
	OperationFailures metrics.Counter
	OperationDuration metrics.Histogram
	KeysGenerated     metrics.Counter

	// Clock times the operations.
	Clock clock.Clock
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		Operations:        p.NewCounter(operationsCounterOpts),
		OperationFailures: p.NewCounter(operationFailuresCounterOpts),
		OperationDuration: p.NewHistogram(operationDurationHistogramOpts),
		KeysGenerated:     p.NewCounter(keysGeneratedCounterOpts),
		Clock:             clock.NewClock(),
	}
}

func (m *Metrics) now() time.Time {
	if m == nil || m.Clock == nil {
		return time.Now()
	}
	return m.Clock.Now()
}

func (m *Metrics) observe(operation, padding string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Operations.With("operation", operation, "padding", padding).Add(1)
	m.OperationDuration.With("operation", operation, "padding", padding).Observe(m.since(start).Seconds())
	if err != nil {
		m.OperationFailures.With("operation", operation, "padding", padding).Add(1)
	}
}

func (m *Metrics) since(start time.Time) time.Duration {
	if m.Clock == nil {
		return time.Since(start)
	}
	return m.Clock.Since(start)
}

func (m *Metrics) keyGenerated(blockSize int) {
	if m == nil {
		return
	}
	m.KeysGenerated.With("block_size", strconv.Itoa(blockSize)).Add(1)
}
