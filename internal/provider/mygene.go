package provider

import "fmt"

// DefaultMyGeneBaseURL is the public MyGene.info API.
const DefaultMyGeneBaseURL = "https://mygene.info/v3"

// MyGene resolves gene identifiers to UniProt accessions.
type MyGene struct {
	client  *Client
	baseURL string
}

// NewMyGene creates a MyGene provider, using the public API when
// baseURL is empty.
func NewMyGene(client *Client, baseURL string) *MyGene {
	if baseURL == "" {
		baseURL = DefaultMyGeneBaseURL
	}
	return &MyGene{client: client, baseURL: baseURL}
}

// UniprotID returns the Swiss-Prot accession for an Ensembl gene ID.
func (m *MyGene) UniprotID(geneID string) (string, error) {
	url := fmt.Sprintf("%s/gene/%s?fields=uniprot", m.baseURL, geneID)

	var payload struct {
		Uniprot struct {
			SwissProt string `json:"Swiss-Prot"`
		} `json:"uniprot"`
	}
	if err := m.client.getJSON("mygene", geneID, url, &payload); err != nil {
		return "", err
	}
	if payload.Uniprot.SwissProt == "" {
		return "", fmt.Errorf("swiss-prot accession for %q: %w", geneID, ErrNotFound)
	}
	return payload.Uniprot.SwissProt, nil
}
