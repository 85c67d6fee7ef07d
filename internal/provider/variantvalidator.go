package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultVariantValidatorBaseURL is the public VariantValidator API.
const DefaultVariantValidatorBaseURL = "https://rest.variantvalidator.org/VariantValidator"

// VariantValidator validates variant descriptions and serves the gene
// cross-references behind the external resource links.
type VariantValidator struct {
	client  *Client
	baseURL string
}

// NewVariantValidator creates a VariantValidator provider, using the
// public API when baseURL is empty.
func NewVariantValidator(client *Client, baseURL string) *VariantValidator {
	if baseURL == "" {
		baseURL = DefaultVariantValidatorBaseURL
	}
	return &VariantValidator{client: client, baseURL: baseURL}
}

// Validation is the subset of a VariantValidator response this tool
// consumes.
type Validation struct {
	GeneSymbol string `json:"gene_symbol"`
	GeneIDs    struct {
		OmimID        []json.Number `json:"omim_id"`
		UCSCID        string        `json:"ucsc_id"`
		EnsemblGeneID string        `json:"ensembl_gene_id"`
	} `json:"gene_ids"`
	Annotations struct {
		DBXref struct {
			HGNC string `json:"hgnc"`
		} `json:"db_xref"`
	} `json:"annotations"`
	PrimaryAssemblyLoci map[string]struct {
		VCF struct {
			Chr string `json:"chr"`
			Pos string `json:"pos"`
			Ref string `json:"ref"`
			Alt string `json:"alt"`
		} `json:"vcf"`
	} `json:"primary_assembly_loci"`
}

// Lookup validates a variant description against an assembly. Ensembl
// descriptions go through the dedicated endpoint.
func (v *VariantValidator) Lookup(assembly, variant string) (*Validation, error) {
	endpoint := "variantvalidator"
	if strings.HasPrefix(variant, "ENS") {
		endpoint = "variantvalidator_ensembl"
	}
	url := fmt.Sprintf("%s/%s/%s/%s/mane_select?content-type=application/json",
		v.baseURL, endpoint, assembly, variant)
	key := fmt.Sprintf("%s_%s", assembly, variant)

	// The validation sits under a key named after the variant,
	// alongside flag and metadata entries.
	var payload map[string]json.RawMessage
	if err := v.client.getJSON("variantvalidator", key, url, &payload); err != nil {
		return nil, err
	}
	raw, ok := payload[variant]
	if !ok {
		return nil, fmt.Errorf("validation for %q: %w", variant, ErrNotFound)
	}
	var out Validation
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode validation for %q: %w", variant, err)
	}
	return &out, nil
}

// Links holds the identifiers needed to build external resource URLs
// for a validated variant.
type Links struct {
	OmimIDs       []string `json:"omim_ids"`
	GeneSymbol    string   `json:"gene_symbol"`
	EnsemblGeneID string   `json:"ensembl_gene_id"`
	Uniprot       string   `json:"uniprot"`
	Decipher      string   `json:"decipher"`
	Variant       string   `json:"variant"`
	HGNC          string   `json:"hgnc"`
	UCSC          string   `json:"ucsc"`
}

// LinkSet is the rendered set of external resource URLs.
type LinkSet struct {
	Omim     []string `json:"omim"`
	Lovd     string   `json:"lovd"`
	Gtex     string   `json:"gtex"`
	Uniprot  string   `json:"uniprot"`
	Decipher string   `json:"decipher"`
	Clinvar  string   `json:"clinvar"`
	Hgnc     string   `json:"hgnc"`
	UCSC     string   `json:"ucsc"`
	Gnomad   string   `json:"gnomad"`
}

// URLs renders the external resource URLs for the variant.
func (l Links) URLs() LinkSet {
	omim := make([]string, 0, len(l.OmimIDs))
	for _, id := range l.OmimIDs {
		omim = append(omim, "https://www.omim.org/entry/"+id)
	}
	return LinkSet{
		Omim:     omim,
		Lovd:     fmt.Sprintf("https://databases.lovd.nl/shared/genes/%s", l.GeneSymbol),
		Gtex:     fmt.Sprintf("https://gtexportal.org/home/gene/%s", l.EnsemblGeneID),
		Uniprot:  fmt.Sprintf("https://www.uniprot.org/uniprotkb/%s/entry", l.Uniprot),
		Decipher: fmt.Sprintf("https://www.deciphergenomics.org/sequence-variant/%s", l.Decipher),
		Clinvar:  fmt.Sprintf("https://www.ncbi.nlm.nih.gov/clinvar/?term=%s", l.Variant),
		Hgnc:     fmt.Sprintf("https://www.genenames.org/data/gene-symbol-report/#!/hgnc_id/%s", l.HGNC),
		UCSC:     fmt.Sprintf("https://genome.cse.ucsc.edu/cgi-bin/hgGene?hgg_gene=%s", l.UCSC),
		Gnomad:   fmt.Sprintf("https://gnomad.broadinstitute.org/variant/%s?dataset=gnomad_r4", l.Decipher),
	}
}

// LookupLinks validates a variant and assembles its Links record,
// resolving the UniProt accession through MyGene.
func (v *VariantValidator) LookupLinks(mygene *MyGene, assembly, variant string) (*Links, error) {
	validation, err := v.Lookup(assembly, variant)
	if err != nil {
		return nil, err
	}

	uniprot, err := mygene.UniprotID(validation.GeneIDs.EnsemblGeneID)
	if err != nil {
		return nil, err
	}

	loci, ok := validation.PrimaryAssemblyLoci[assembly]
	if !ok {
		return nil, fmt.Errorf("loci for assembly %q: %w", assembly, ErrNotFound)
	}
	vcf := loci.VCF
	// DECIPHER identifies variants as {chrom}-{pos}-{ref}-{alt},
	// without the "chr" prefix.
	decipher := strings.Join([]string{
		strings.TrimPrefix(vcf.Chr, "chr"), vcf.Pos, vcf.Ref, vcf.Alt,
	}, "-")

	omim := make([]string, 0, len(validation.GeneIDs.OmimID))
	for _, id := range validation.GeneIDs.OmimID {
		omim = append(omim, id.String())
	}

	return &Links{
		OmimIDs:       omim,
		GeneSymbol:    validation.GeneSymbol,
		EnsemblGeneID: validation.GeneIDs.EnsemblGeneID,
		Uniprot:       uniprot,
		Decipher:      decipher,
		Variant:       variant,
		HGNC:          validation.Annotations.DBXref.HGNC,
		UCSC:          validation.GeneIDs.UCSCID,
	}, nil
}
