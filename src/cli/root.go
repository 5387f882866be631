// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/issuer"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/store"
	"github.com/H0llyW00dzZ/tunnel-pki/src/logger"
)

var (
	configFile string
	storeDir   string

	log logger.Logger
)

// Execute runs the root command and returns the first error encountered.
//
// Every subcommand reports failures through the returned error; the caller
// maps a non-nil error to a non-zero exit status.
func Execute(ctx context.Context, version string, l logger.Logger) error {
	log = l
	if log == nil {
		log = logger.NewCLILogger()
	}

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName(),
		Short: "Certificate hierarchy manager for reverse-tunnel deployments",
		Long: "tunnel-pki manages a private certificate hierarchy for a reverse-tunnel\n" +
			"proxy deployment: a root CA, a server identity with configurable SANs,\n" +
			"and per-client credential bundles driven by a plain-text manifest.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVarP(&storeDir, "store", "s", "", "certificate store directory (overrides config)")

	rootCmd.AddCommand(
		newIssueCmd(),
		newVerifyCmd(),
		newListCmd(),
		newCleanCmd(),
	)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if hint := fault.Remediation(err); hint != "" {
			log.Errorf("Error: %v (hint: %s)", err, hint)
		} else {
			log.Errorf("Error: %v", err)
		}
	}
	return err
}

// loadConfig resolves the effective configuration from the global flags.
// The --store flag overrides the configured store directory.
func loadConfig() (*pkiconf.Config, error) {
	cfg, err := pkiconf.Load(configFile)
	if err != nil {
		return nil, err
	}
	if storeDir != "" {
		cfg.StoreDir = storeDir
	}
	return cfg, nil
}

// openStore resolves the configuration and opens the certificate store
// without creating any directories.
func openStore() (*pkiconf.Config, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, store.New(cfg.StoreDir), nil
}

// openIssuer resolves the configuration, prepares the store directories and
// returns an issuer bound to them.
func openIssuer() (*issuer.Issuer, *pkiconf.Config, error) {
	cfg, st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	if err := st.EnsureDirs(); err != nil {
		return nil, nil, err
	}
	return issuer.New(cfg, st), cfg, nil
}
