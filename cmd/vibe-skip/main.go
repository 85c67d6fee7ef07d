// Package main provides the vibe-skip command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:   "vibe-skip",
		Short: "Evaluate exon skip therapy candidates for transcript variants",
		Long: `vibe-skip analyzes an HGVS variant description against its transcript
and ranks the exon skips that could restore part of the coding sequence.
Transcript annotation comes from Ensembl and UCSC; variant normalization
and protein prediction come from a Mutalyzer-compatible engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.vibe-skip.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd(&verbose))
	root.AddCommand(newTranscriptCmd(&verbose))
	root.AddCommand(newFetchCmd(&verbose))
	root.AddCommand(newLinksCmd(&verbose))
	root.AddCommand(newUniprotCmd())
	root.AddCommand(newServeCmd(&verbose))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// initConfig loads ~/.vibe-skip.yaml (or the supplied file) and the
// VIBE_SKIP_* environment.
func initConfig(cfgFile string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	viper.SetDefault("cache.dir", filepath.Join(home, ".vibe-skip"))
	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("server.listen", ":8080")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigName(".vibe-skip")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIBE_SKIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger: warnings only by default, everything
// with --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vibe-skip version %s (%s) built %s\n", version, commit, date)
		},
	}
}
