package provider

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Column layout of idmapping_selected.tab, from the UniProt
// knowledgebase idmapping dump.
const (
	idmapAccession   = 0
	idmapRefSeq      = 3
	idmapEnsemblTRS  = 19
	idmapFieldCount  = 22
	idmapLineBufSize = 4 * 1024 * 1024
)

// UniprotID streams a gzipped idmapping_selected.tab dump and returns
// the UniProt accession mapped to the identifier, which may be a RefSeq
// protein ID or an Ensembl transcript ID. A missing mapping is reported
// through ok, not an error.
func UniprotID(path, identifier string) (accession string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("open idmapping dump: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", false, fmt.Errorf("read idmapping dump: %w", err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), idmapLineBufSize)
	for scanner.Scan() {
		line := scanner.Text()
		// Cheap pre-filter before splitting the whole line.
		if !strings.Contains(line, identifier) {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < idmapFieldCount {
			continue
		}
		if containsID(fields[idmapEnsemblTRS], identifier) || containsID(fields[idmapRefSeq], identifier) {
			return fields[idmapAccession], true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("read idmapping dump: %w", err)
	}
	return "", false, nil
}

// containsID reports whether a "; "-separated multi-value field holds
// the identifier. Missing values are written as "-".
func containsID(field, identifier string) bool {
	for _, value := range strings.Split(field, "; ") {
		if value == identifier {
			return true
		}
	}
	return false
}
