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
	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/sqlitegis/sqlitegis/pkg/driver"
)

func makeExportCommand() *cobra.Command {
	var gdalDriverName string
	cmd := &cobra.Command{
		Use:   "export <db> <layer> <dest>",
		Short: "export a layer to a GDAL-supported vector format",
		Long:  `Export a feature layer discovered in a sqlitegis database to any format GDAL's loaded drivers support, such as "ESRI Shapefile" or "GeoJSON".`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], args[1], gdalDriverName, args[2])
		},
	}
	cmd.Flags().StringVar(&gdalDriverName, "format", "GeoJSON", "name of the GDAL driver to export through")
	return cmd
}

func runExport(dbPath, layerName, gdalDriverName, destPath string) error {
	ds, err := driver.Open(dbPath, false)
	if err != nil {
		return errors.Wrapf(err, "opening %q", dbPath)
	}
	defer ds.Close()

	layer := ds.LayerByName(layerName)
	if layer == nil {
		return errors.Newf("no layer named %q", layerName)
	}

	glog.Infof("sqlitegis: exporting %s to %s via %s", layerName, destPath, gdalDriverName)
	return driver.ExportLayer(layer, gdalDriverName, destPath)
}
