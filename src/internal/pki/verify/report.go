// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderTable renders the verification report as a formatted markdown table
// with a pass/fail summary line.
func (r *Report) RenderTable() string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"Check", "Status", "Detail"})

	var rows [][]string
	for _, check := range r.Checks {
		status := "✓ ok"
		if !check.OK {
			status = "✗ FAIL"
		}
		rows = append(rows, []string{check.Name, status, check.Detail})
	}

	table.Bulk(rows)
	table.Render()

	fmt.Fprintf(&buf, "\nclients: %d valid, %d invalid\n", r.ClientsValid, r.ClientsInvalid)
	if r.OK() {
		buf.WriteString("store verification: PASS\n")
	} else {
		buf.WriteString("store verification: FAIL\n")
	}

	return buf.String()
}
