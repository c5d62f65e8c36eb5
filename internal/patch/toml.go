// Package patch implements the two patch-application dialects: shallow
// TOML section-merge and generic diff-with-snippet-fallback.
package patch

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// MergeTOML merges patch into current as a shallow section-merge: a
// top-level key present only in patch is inserted verbatim; a key present
// in both, where both values are tables, is extended one level deep with
// patch winning on collision; a key present in both where either side is
// not a table is left untouched. Either document failing to parse is
// treated as an empty table rather than an error, matching a patch
// engine that must never abort a run.
func MergeTOML(current, patchBody string) (string, error) {
	currentTable := decodeTable(current)
	patchTable := decodeTable(patchBody)

	for key, patchValue := range patchTable {
		currentValue, exists := currentTable[key]
		if !exists {
			currentTable[key] = patchValue
			continue
		}

		currentSection, currentIsTable := currentValue.(map[string]interface{})
		patchSection, patchIsTable := patchValue.(map[string]interface{})
		if !currentIsTable || !patchIsTable {
			continue
		}

		for sectionKey, sectionValue := range patchSection {
			currentSection[sectionKey] = sectionValue
		}
		currentTable[key] = currentSection
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(currentTable); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decodeTable parses raw TOML text into a plain map, returning an empty
// table on any parse error rather than propagating it.
func decodeTable(raw string) map[string]interface{} {
	table := make(map[string]interface{})
	if _, err := toml.Decode(raw, &table); err != nil {
		return make(map[string]interface{})
	}
	return table
}
