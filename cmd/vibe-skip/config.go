package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeys are the settings the pipeline reads, with the values they
// accept. The set subcommand rejects anything else.
var configKeys = map[string]string{
	"cache.dir":                 "directory for cached provider payloads",
	"cache.backend":             "cache backend: file, duckdb or none",
	"server.listen":             "listen address for the serve command",
	"uniprot.idmapping":         "path to a local idmapping_selected.tab.gz",
	"ensembl.base_url":          "override the Ensembl REST API",
	"ucsc.base_url":             "override the UCSC REST API",
	"mygene.base_url":           "override the MyGene REST API",
	"variantvalidator.base_url": "override the VariantValidator REST API",
	"mutalyzer.base_url":        "override the normalization engine API",
}

var cacheBackends = []string{"file", "duckdb", "none"}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-skip configuration",
		Long: "Show, get, or set configuration values. Settings live in\n" +
			"~/.vibe-skip.yaml and every key can also be set through the\n" +
			"environment (cache.dir becomes VIBE_SKIP_CACHE_DIR).\n\nKeys:\n" +
			keyHelp(),
		Example: `  vibe-skip config                           # show all config
  vibe-skip config set cache.backend duckdb  # keep cache and history in DuckDB
  vibe-skip config get cache.dir`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

// keyHelp renders the known keys for the command help, sorted.
func keyHelp() string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %-26s%s\n", name, configKeys[name])
	}
	return b.String()
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.vibe-skip.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	if _, ok := configKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q; run 'vibe-skip config --help' for the key list", key)
	}
	if key == "cache.backend" && !validBackend(value) {
		return fmt.Errorf("cache.backend must be one of %s", strings.Join(cacheBackends, ", "))
	}
	viper.Set(key, value)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vibe-skip.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func validBackend(value string) bool {
	for _, b := range cacheBackends {
		if value == b {
			return true
		}
	}
	return false
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
