package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/hgvs"
	"github.com/inodb/vibe-skip/internal/provider"
	"github.com/inodb/vibe-skip/internal/server"
	"github.com/inodb/vibe-skip/internal/store"
	"github.com/inodb/vibe-skip/internal/transcript"
)

// newService assembles the pipeline from the configuration. The
// returned closer releases the cache backend.
func newService(logger *zap.Logger) (*server.Service, func(), error) {
	var (
		cache   store.Cache
		history *store.DuckStore
		closer  = func() {}
	)
	switch backend := viper.GetString("cache.backend"); backend {
	case "none":
		cache = store.NopCache{}
	case "duckdb":
		duck, err := store.OpenDuck(filepath.Join(viper.GetString("cache.dir"), "vibe-skip.duckdb"))
		if err != nil {
			return nil, nil, err
		}
		cache = duck
		history = duck
		closer = func() { _ = duck.Close() }
	case "file":
		fc, err := store.NewFileCache(viper.GetString("cache.dir"))
		if err != nil {
			return nil, nil, err
		}
		cache = fc
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", backend)
	}

	client := provider.NewClient(cache)
	client.SetLogger(logger)

	engine := hgvs.NewClient(viper.GetString("mutalyzer.base_url"))
	engine.SetLogger(logger)

	svc := server.NewService(
		provider.NewEnsembl(client, viper.GetString("ensembl.base_url")),
		provider.NewUCSC(client, viper.GetString("ucsc.base_url")),
		provider.NewMyGene(client, viper.GetString("mygene.base_url")),
		provider.NewVariantValidator(client, viper.GetString("variantvalidator.base_url")),
		engine,
	)
	svc.SetLogger(logger)
	if history != nil {
		svc.SetHistory(history)
	}
	return svc, closer, nil
}

func newAnalyzeCmd(verbose *bool) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <hgvs>",
		Short: "Rank exon skip candidates for a variant description",
		Example: `  vibe-skip analyze "ENST00000375549.8:c.53del"
  vibe-skip analyze --json "ENST00000375549.8:c.53_169del"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc, closer, err := newService(logger)
			if err != nil {
				return err
			}
			defer closer()

			results, err := svc.Analyze(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(results)
			}
			printResults(results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON instead of a table")
	return cmd
}

// printResults renders the ranked results as a table.
func printResults(results []transcript.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "THERAPY\tSCORE\tCODING\tHGVS")
	for _, r := range results {
		coding := "-"
		for _, c := range r.Comparison {
			if c.Name == transcript.NameCoding {
				coding = c.Basepairs
			}
		}
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%s\n", r.Therapy.Name, r.Score(), coding, r.Therapy.Hgvs)
	}
	w.Flush()
}

func newTranscriptCmd(verbose *bool) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "transcript <id>",
		Short: "Fetch and print the annotation records of a transcript",
		Example: `  vibe-skip transcript ENST00000375549.8
  vibe-skip transcript --json ENST00000375549.8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc, closer, err := newService(logger)
			if err != nil {
				return err
			}
			defer closer()

			t, _, err := svc.FetchTranscript(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(transcript.NewModel(t))
			}
			for _, r := range t.Records() {
				fmt.Println(r.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON instead of BED lines")
	return cmd
}

func newFetchCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <id>...",
		Short: "Warm the provider caches for the given transcripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc, closer, err := newService(logger)
			if err != nil {
				return err
			}
			defer closer()

			var failed int
			for _, id := range args {
				if _, _, err := svc.FetchTranscript(id); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
					failed++
					continue
				}
				fmt.Printf("%s: cached\n", id)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d transcripts failed", failed, len(args))
			}
			return nil
		},
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
