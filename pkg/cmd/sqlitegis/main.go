// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Command sqlitegis is a small command-line front end for
// github.com/sqlitegis/sqlitegis/pkg/extension and
// github.com/sqlitegis/sqlitegis/pkg/driver: run a query against a
// sqlitegis-extended database, list its discovered feature layers, or
// export one to any GDAL-supported format.
package main

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geoproj"
)

// cmdOut is a proxy for os.Stdout, overridable in tests.
var cmdOut io.Writer = os.Stdout

func main() {
	if err := makeSqliteGISCommand().Execute(); err != nil {
		glog.Errorf("sqlitegis: %+v", err)
		os.Exit(1)
	}
}

func makeSqliteGISCommand() *cobra.Command {
	var projSearchPaths []string
	command := &cobra.Command{
		Use:   "sqlitegis [command] (flags)",
		Short: "sqlitegis loads spatial ST_ functions into a SQLite database and exposes its tables as feature layers",
		Long: `sqlitegis is a command-line front end for a PostGIS-compatible SQLite
extension. Use it to:

- run a query against a database with the ST_ function catalog attached.
- list the tables sqlitegis recognizes as feature layers.
- export a layer to any GDAL-supported vector format.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if len(projSearchPaths) > 0 {
				geoproj.SetSearchPaths(projSearchPaths)
			}
		},
	}
	command.PersistentFlags().StringSliceVar(&projSearchPaths, "proj-search-path", nil,
		"directories PROJ should search for proj.db and grid files, replacing its default search path")

	command.AddCommand(makeQueryCommand())
	command.AddCommand(makeLayersCommand())
	command.AddCommand(makeExportCommand())
	command.AddCommand(makeVersionCommand())
	return command
}
