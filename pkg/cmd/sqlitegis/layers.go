// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/sqlitegis/sqlitegis/pkg/driver"
)

func makeLayersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layers <db>",
		Short: "list the feature layers sqlitegis discovers in a database",
		Long:  `List each table sqlitegis recognizes as a feature layer, along with its field count and row count.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(args[0])
		},
	}
	return cmd
}

func runLayers(dbPath string) error {
	ds, err := driver.Open(dbPath, false)
	if err != nil {
		return errors.Wrapf(err, "opening %q", dbPath)
	}
	defer ds.Close()

	tw := tabwriter.NewWriter(cmdOut, 2, 1, 2, ' ', 0)
	fmt.Fprintln(tw, "layer\tfields\tfeatures")
	for i := 0; i < ds.LayerCount(); i++ {
		layer := ds.Layer(i)
		n, err := layer.FeatureCount()
		if err != nil {
			return errors.Wrapf(err, "counting features in %q", layer.Name())
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\n", layer.Name(), len(layer.Fields()), n)
	}
	return tw.Flush()
}
