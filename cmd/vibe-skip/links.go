package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-skip/internal/provider"
)

func newLinksCmd(verbose *bool) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "links <hgvs>",
		Short:   "Print external resource links for a variant description",
		Example: `  vibe-skip links "ENST00000375549.8:c.53del"`,
		Args:    cobra.ExactArgs(1),
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

			links, err := svc.Links(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(links)
			}
			printLinks(links)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON instead of text")
	return cmd
}

func printLinks(links *provider.LinkSet) {
	if len(links.Omim) > 0 {
		fmt.Printf("omim:     %s\n", strings.Join(links.Omim, " "))
	}
	fmt.Printf("lovd:     %s\n", links.Lovd)
	fmt.Printf("gtex:     %s\n", links.Gtex)
	fmt.Printf("uniprot:  %s\n", links.Uniprot)
	fmt.Printf("decipher: %s\n", links.Decipher)
	fmt.Printf("clinvar:  %s\n", links.Clinvar)
	fmt.Printf("hgnc:     %s\n", links.Hgnc)
	fmt.Printf("ucsc:     %s\n", links.UCSC)
	fmt.Printf("gnomad:   %s\n", links.Gnomad)
}

func newUniprotCmd() *cobra.Command {
	var idmapping string
	cmd := &cobra.Command{
		Use:   "uniprot <identifier>",
		Short: "Look up a UniProt accession in a local idmapping dump",
		Long: `Look up the UniProt accession for a RefSeq protein ID or an Ensembl
transcript ID in a local idmapping_selected.tab.gz dump, from
https://ftp.uniprot.org/pub/databases/uniprot/current_release/knowledgebase/idmapping/.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := idmapping
			if path == "" {
				path = viper.GetString("uniprot.idmapping")
			}
			if path == "" {
				return fmt.Errorf("no idmapping dump configured; use --idmapping or set uniprot.idmapping")
			}
			accession, ok, err := provider.UniprotID(path, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%q is not mapped to a UniProt accession", args[0])
			}
			fmt.Println(accession)
			return nil
		},
	}
	cmd.Flags().StringVar(&idmapping, "idmapping", "", "path to idmapping_selected.tab.gz")
	return cmd
}
