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
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/sqlitegis/sqlitegis/pkg/extension"
)

func makeQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <db> <sql>",
		Short: "run a query against a sqlitegis-extended database",
		Long:  `Run a query against a sqlitegis-extended database and print the results.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(args[0], args[1])
		},
	}
	return cmd
}

func runQuery(dbPath, query string) error {
	glog.Infof("sqlitegis: opening %s", dbPath)
	db, err := extension.Open(dbPath)
	if err != nil {
		return errors.Wrapf(err, "opening %q", dbPath)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return errors.Wrap(err, "running query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return errors.Wrap(err, "reading columns")
	}

	tw := tabwriter.NewWriter(cmdOut, 2, 1, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	dest := make([]interface{}, len(cols))
	raw := make([]interface{}, len(cols))
	for i := range dest {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return errors.Wrap(err, "scanning row")
		}
		cells := make([]string, len(cols))
		for i, v := range raw {
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "reading result set")
	}
	return tw.Flush()
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(t))
	default:
		return fmt.Sprintf("%v", t)
	}
}
