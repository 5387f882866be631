// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/issuer"
)

var (
	caCommonName   string
	caValidityDays int
	serverSANs     string
)

// newIssueCmd builds the issue command tree: ca, server, client,
// all-clients and the umbrella all.
func newIssueCmd() *cobra.Command {
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue certificates and credential bundles",
	}

	caCmd := &cobra.Command{
		Use:   "ca",
		Short: "Issue the root certificate authority",
		Args:  cobra.NoArgs,
		RunE:  execIssueCA,
	}
	caCmd.Flags().StringVar(&caCommonName, "cn", "", "CA common name (default from config)")
	caCmd.Flags().IntVar(&caValidityDays, "days", 0, "CA validity in days (default from config)")

	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Issue the server identity",
		Args:  cobra.NoArgs,
		RunE:  execIssueServer,
	}
	serverCmd.Flags().StringVar(&serverSANs, "sans", "", "comma-separated SAN list, e.g. DNS:vpn.example.com,IP:203.0.113.7 (default from config)")

	clientCmd := &cobra.Command{
		Use:   "client COMMON_NAME",
		Short: "Issue one client credential bundle",
		Args:  cobra.ExactArgs(1),
		RunE:  execIssueClient,
	}

	allClientsCmd := &cobra.Command{
		Use:   "all-clients",
		Short: "Issue a credential bundle for every manifest entry",
		Args:  cobra.NoArgs,
		RunE:  execIssueAllClients,
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Issue the CA, the server identity and all client bundles",
		Args:  cobra.NoArgs,
		RunE:  execIssueAll,
	}
	allCmd.Flags().StringVar(&serverSANs, "sans", "", "comma-separated SAN list for the server identity (default from config)")

	issueCmd.AddCommand(caCmd, serverCmd, clientCmd, allClientsCmd, allCmd)
	return issueCmd
}

func execIssueCA(cmd *cobra.Command, args []string) error {
	i, _, err := openIssuer()
	if err != nil {
		return err
	}
	return issueCA(i)
}

func issueCA(i *issuer.Issuer) error {
	result, err := i.IssueCA(caCommonName, caValidityDays)
	if err != nil {
		return err
	}

	if result.ReplacedExisting {
		log.Println("WARNING: replaced the existing CA; previously issued identities no longer verify")
	}
	if result.OrphanedServer {
		log.Println("WARNING: the stored server identity was signed by the replaced CA; reissue it")
	}
	log.Printf("Issued CA %q (valid %d days): %s", result.CommonName, result.ValidityDays, result.CertPath)
	return nil
}

func execIssueServer(cmd *cobra.Command, args []string) error {
	i, _, err := openIssuer()
	if err != nil {
		return err
	}
	return issueServer(i)
}

func issueServer(i *issuer.Issuer) error {
	sans, err := parseSANsFlag()
	if err != nil {
		return err
	}

	result, err := i.IssueServer(sans)
	if err != nil {
		return err
	}
	log.Printf("Issued server identity %q with SANs %v", result.CommonName, result.SANs)
	log.Printf("  certificate: %s", result.CertPath)
	log.Printf("  PKCS12:      %s", result.P12Path)
	return nil
}

// parseSANsFlag splits the --sans flag; an empty flag defers to the
// configured defaults.
func parseSANsFlag() ([]string, error) {
	if serverSANs == "" {
		return nil, nil
	}
	return issuer.ParseSANList(serverSANs)
}

func execIssueClient(cmd *cobra.Command, args []string) error {
	i, _, err := openIssuer()
	if err != nil {
		return err
	}

	result, err := i.IssueClient(args[0])
	if err != nil {
		return err
	}
	log.Printf("Issued client bundle for %q: %s", result.CommonName, result.BundlePath)
	return nil
}

func execIssueAllClients(cmd *cobra.Command, args []string) error {
	i, cfg, err := openIssuer()
	if err != nil {
		return err
	}
	return issueAllClients(i, cfg.ManifestPath)
}

func issueAllClients(i *issuer.Issuer, manifestPath string) error {
	result, err := i.IssueAllClients(manifestPath)
	if err != nil {
		return err
	}

	for _, issued := range result.Issued {
		log.Printf("Issued client bundle for %q: %s", issued.CommonName, issued.BundlePath)
	}
	for _, failure := range result.Failures {
		log.Errorf("Failed to issue %q: %v", failure.CommonName, failure.Err)
	}
	log.Printf("Batch complete: %d issued, %d failed", len(result.Issued), len(result.Failures))

	if !result.OK() {
		return fault.Invalid("%d of %d manifest entries failed",
			len(result.Failures), len(result.Issued)+len(result.Failures))
	}
	return nil
}

// execIssueAll provisions the full hierarchy in dependency order. The CA and
// server steps abort on failure; the client batch is best-effort per entry.
func execIssueAll(cmd *cobra.Command, args []string) error {
	i, cfg, err := openIssuer()
	if err != nil {
		return err
	}

	if err := issueCA(i); err != nil {
		return err
	}
	if err := issueServer(i); err != nil {
		return err
	}
	return issueAllClients(i, cfg.ManifestPath)
}
