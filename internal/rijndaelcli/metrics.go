/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func (c *cli) dumpMetrics(cmd *cobra.Command, args []string) error {
	if c.registry == nil {
		return nil
	}
	return writeMetrics(cmd.ErrOrStderr(), c.registry)
}

// writeMetrics writes the families gathered by g in the prometheus text
// exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "error gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "error writing metric family %s", mf.GetName())
		}
	}
	return nil
}
