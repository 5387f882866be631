// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

var cleanConfirmed bool

// newCleanCmd builds the clean command. Deleting the store destroys the CA
// private key, so the command refuses to run without --yes.
func newCleanCmd() *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the entire certificate store",
		Args:  cobra.NoArgs,
		RunE:  execClean,
	}
	cleanCmd.Flags().BoolVar(&cleanConfirmed, "yes", false, "confirm deletion of the certificate store")
	return cleanCmd
}

func execClean(cmd *cobra.Command, args []string) error {
	if !cleanConfirmed {
		return fault.Invalid("refusing to delete the certificate store without --yes")
	}

	_, st, err := openStore()
	if err != nil {
		return err
	}

	if err := st.Clean(); err != nil {
		return err
	}
	log.Printf("Removed certificate store %s", st.Root())
	return nil
}
