// Package cli wires screenctl's cobra command tree: flags to config, config
// to scanner, scanner result to stdout.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/coldharbor-labs/suppression-screen/internal/assembler"
	"github.com/coldharbor-labs/suppression-screen/internal/config"
	"github.com/coldharbor-labs/suppression-screen/internal/domain"
	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/internal/scanner"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	targetURL    string
	baselineFile string
	fetchTimeout time.Duration
	userAgent    string
)

var rootCmd = &cobra.Command{
	Use:   "screenctl",
	Short: "A local public-signals suppression screen.",
	Long: `screenctl runs the suppression screen against a single site and
prints the resulting report (or error document) as JSON.

It performs the same normalize -> guard -> fetch -> analyze -> assemble
pipeline the HTTP service runs, for local and manual scans.`,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a single site and print the report.",
	Run: func(cmd *cobra.Command, args []string) {
		if targetURL == "" {
			fmt.Fprintln(os.Stderr, "Error: --url is required.")
			cmd.Usage()
			os.Exit(1)
		}

		cfg, err := initConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		baseline, err := loadBaseline(baselineFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		sink := metadata.NewZerologSink(os.Stderr)
		s := scanner.New(cfg, sink, time.Now)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.OverallDeadline())
		defer cancel()

		result := s.Scan(ctx, targetURL, baseline)
		if result.Report == nil {
			assembler.WriteError(os.Stdout, result.ErrorType, result.ErrorMsg)
			os.Exit(1)
		}
		assembler.WriteReport(os.Stdout, *result.Report)
	},
}

// Execute adds all child commands to the root command. Called once by
// main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	scanCmd.Flags().StringVar(&targetURL, "url", "", "site to scan (required)")
	scanCmd.Flags().StringVar(&baselineFile, "baseline-file", "", "path to a JSON baseline from a prior scan")
	scanCmd.Flags().DurationVar(&fetchTimeout, "fetch-timeout", 0, "per-fetch timeout (overrides config default)")
	scanCmd.Flags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")

	rootCmd.AddCommand(scanCmd)
}

func initConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.WithConfigFile(cfgFile)
	}

	builder := config.WithDefault()
	if fetchTimeout > 0 {
		builder = builder.WithFetchTimeout(fetchTimeout)
	}
	if userAgent != "" {
		builder = builder.WithUserAgent(userAgent)
	}
	return builder.Build()
}

type baselineFileDTO struct {
	RiskLevel domain.RiskLevel `json:"risk_level"`
	ScanDate  string           `json:"scan_date"`
	P0        int              `json:"p0"`
	P1        int              `json:"p1"`
	P2        int              `json:"p2"`
	P3        int              `json:"p3"`
}

func loadBaseline(path string) (*domain.Baseline, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline file: %w", err)
	}
	var dto baselineFileDTO
	if err := json.Unmarshal(content, &dto); err != nil {
		return nil, fmt.Errorf("parsing baseline file: %w", err)
	}
	baseline := domain.NewBaseline(dto.RiskLevel, dto.ScanDate, dto.P0, dto.P1, dto.P2, dto.P3)
	return &baseline, nil
}

func resetFlagsForTest() {
	cfgFile = ""
	targetURL = ""
	baselineFile = ""
	fetchTimeout = 0
	userAgent = ""
}
