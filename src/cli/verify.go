// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/verify"
)

// newVerifyCmd builds the verify command. It inspects the store without
// modifying anything and reports per-artifact health.
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify every artifact in the certificate store",
		Args:  cobra.NoArgs,
		RunE:  execVerify,
	}
}

func execVerify(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}

	report, err := verify.Run(st)
	if err != nil {
		return err
	}

	log.Println(report.RenderTable())

	if !report.OK() {
		return fault.Invalid("store verification failed")
	}
	return nil
}
