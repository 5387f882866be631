// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/bundle"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/manifest"
)

// newListCmd builds the list command. It cross-references the client
// manifest against the issued bundles in the store.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List manifest entries and issued client bundles",
		Args:  cobra.NoArgs,
		RunE:  execList,
	}
}

func execList(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}

	// A missing manifest is not fatal for listing; the store can still
	// hold bundles issued one at a time.
	entries, err := manifest.Load(cfg.ManifestPath)
	if err != nil && !errors.Is(err, fault.ErrPrerequisiteMissing) {
		return err
	}

	bundles, err := st.Bundles()
	if err != nil {
		return err
	}
	issued := make(map[string]bool, len(bundles))
	for _, name := range bundles {
		issued[name] = true
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Common Name", "Bundle", "Issued"})

	var rows [][]string
	for _, cn := range entries {
		sanitized := bundle.Sanitize(cn)
		status := "no"
		if issued[sanitized] {
			status = "yes"
			delete(issued, sanitized)
		}
		rows = append(rows, []string{cn, sanitized + ".tar.gz", status})
	}

	// Bundles issued outside the manifest still belong in the listing.
	for _, name := range bundles {
		if issued[name] {
			rows = append(rows, []string{"(not in manifest)", name + ".tar.gz", "yes"})
		}
	}

	table.Bulk(rows)
	table.Render()

	log.Println(buf.String())
	log.Printf("%d manifest entries, %d bundles issued", len(entries), len(bundles))
	return nil
}
