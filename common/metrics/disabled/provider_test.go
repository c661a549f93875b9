/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package disabled_test

import (
	"github.com/hyperledger/fabric-rijndael/common/metrics"
	"github.com/hyperledger/fabric-rijndael/common/metrics/disabled"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Provider", func() {
	var p metrics.Provider

	BeforeEach(func() {
		p = &disabled.Provider{}
	})

	Describe("NewCounter", func() {
		It("returns a counter that ignores labels and deltas", func() {
			c := p.NewCounter(metrics.CounterOpts{
				Namespace:  "bccsp",
				Subsystem:  "sw",
				Name:       "operations",
				LabelNames: []string{"operation", "padding"},
			})
			Expect(c).NotTo(BeNil())

			c.Add(1)
			labeled := c.With("operation", "encrypt", "padding", "pkcs7")
			Expect(labeled).To(BeIdenticalTo(c))
			labeled.Add(2)
		})
	})

	Describe("NewGauge", func() {
		It("returns a no-op gauge", func() {
			g := p.NewGauge(metrics.GaugeOpts{})
			Expect(g).NotTo(BeNil())

			g.Set(1)
			g.Add(1)
			g.With("whatever").Set(2)
		})
	})

	Describe("NewHistogram", func() {
		It("returns a no-op histogram", func() {
			h := p.NewHistogram(metrics.HistogramOpts{Buckets: []float64{16, 256, 4096}})
			Expect(h).NotTo(BeNil())

			h.Observe(160)
			h.With("padding", "zero").Observe(32)
		})
	})
})
