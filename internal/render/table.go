//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package render formats analytics results as aligned text tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/salescope/salescope/internal/analytics"
)

// Table writes a result as an aligned text table with a title line,
// header, separator and one line per row.
func Table(w io.Writer, res *analytics.Result) error {
	if _, err := fmt.Fprintf(w, "-- %s --\n", res.Name); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))

	separators := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		separators[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(separators, "\t"))

	for _, row := range res.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%d rows)\n\n", len(res.Rows))
	return err
}
