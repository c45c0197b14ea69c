package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/psspowers/underwriting/internal/application/dto"
	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/pkg/tlsutil"
)

const appName = "scrutinyctl"

// Set at build time with -ldflags "-X main.Version=...".
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

func rootCmd() *cobra.Command {
	registry := taxonomy.Default()
	browse := usecase.NewBrowseTaxonomyUseCase(registry)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Browse the credit taxonomy and score scrutiny inputs",
		Long: `scrutinyctl runs the underwriting scoring engine locally.

It lists the sector, industry and sub-industry taxonomy and scores a
YAML description of a customer's classification and qualitative inputs.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		sectorsCmd(browse),
		industriesCmd(browse),
		subIndustriesCmd(browse),
		scoreCmd(registry),
		devCertsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

func sectorsCmd(browse *usecase.BrowseTaxonomyUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "List every sector",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, s := range browse.ListSectors(cmd.Context()).Sectors {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
		},
	}
}

func industriesCmd(browse *usecase.BrowseTaxonomyUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "industries <sector>",
		Short: "List the industries of a sector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := browse.ListIndustries(cmd.Context(), dto.ListIndustriesRequest{Sector: args[0]})
			if len(resp.Industries) == 0 {
				return fmt.Errorf("unknown sector %q", args[0])
			}
			for _, i := range resp.Industries {
				fmt.Fprintln(cmd.OutOrStdout(), i)
			}
			return nil
		},
	}
}

func subIndustriesCmd(browse *usecase.BrowseTaxonomyUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "sub-industries <industry>",
		Short: "List the sub-industries of an industry with their scores and points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := browse.ListSubIndustries(cmd.Context(), dto.ListSubIndustriesRequest{Industry: args[0]})
			if len(resp.SubIndustries) == 0 {
				return fmt.Errorf("unknown industry %q", args[0])
			}
			for _, s := range resp.SubIndustries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tscore=%d\tpoints=%d\n", s.Name, s.Score, s.Points)
			}
			return nil
		},
	}
}

func scoreCmd(registry *taxonomy.Registry) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a classification and scrutiny inputs read from YAML",
		Example: `  scrutinyctl score -f inputs.yaml
  cat inputs.yaml | scrutinyctl score -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readScoreRequest(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			classifier := service.NewVerdictClassifier()
			scorer := usecase.NewScoreScrutinyUseCase(service.NewScrutinyEngine(registry, classifier), classifier)
			return runScore(cmd.Context(), cmd.OutOrStdout(), scorer, req)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with classification, inputs and monthly_billing (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readScoreRequest decodes a YAML request from file, or stdin for "-".
// Unknown keys are rejected so a misspelt answer cannot drop out silently.
func readScoreRequest(stdin io.Reader, file string) (dto.ScoreRequest, error) {
	src := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return dto.ScoreRequest{}, fmt.Errorf("read %s: %w", file, err)
		}
		defer f.Close()
		src = f
	}

	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)

	var req dto.ScoreRequest
	if err := dec.Decode(&req); err != nil {
		return dto.ScoreRequest{}, fmt.Errorf("parse %s: %w", file, err)
	}
	return req, nil
}

func runScore(ctx context.Context, out io.Writer, scorer *usecase.ScoreScrutinyUseCase, req dto.ScoreRequest) error {
	result, err := scorer.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func devCertsCmd() *cobra.Command {
	var (
		hosts    []string
		outDir   string
		validity time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dev-certs",
		Short: "Write a throwaway CA and gRPC server certificate for local TLS",
		Long: `dev-certs issues a development CA and a server certificate signed by it.
Point GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE at server.pem and server-key.pem,
and give clients ca.pem as their root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := tlsutil.NewDevBundle(hosts, validity)
			if err != nil {
				return err
			}
			if err := bundle.WriteDir(outDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, %s, %s and %s to %s\n",
				tlsutil.CACertFile, tlsutil.CAKeyFile, tlsutil.ServerCertFile, tlsutil.ServerKeyFile, outDir)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names and IPs the server certificate covers")
	cmd.Flags().StringVarP(&outDir, "out", "o", "certs", "Output directory")
	cmd.Flags().DurationVar(&validity, "validity", 365*24*time.Hour, "Certificate lifetime")
	return cmd
}
