package normalization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReferenceTables(t *testing.T) {
	tables := DefaultReferenceTables()

	assert.Equal(t, len(defaultAliases), tables.Aliases.Len())
	assert.Equal(t, len(defaultSynonymGroups), tables.Synonyms.Len())
}

func TestLoadReferenceTables_EmptyPath(t *testing.T) {
	tables, err := LoadReferenceTables("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAliasTable().Entries(), tables.Aliases.Entries())
	assert.Equal(t, DefaultSynonymGroups().Groups(), tables.Synonyms.Groups())
}

func TestLoadReferenceTables_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.json")
	content := `{
		"aliases": [{"trigger": "Лотос", "replacement": "lotus"}],
		"synonyms": [["Лотос", "Lotus"]]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tables, err := LoadReferenceTables(path)
	require.NoError(t, err)

	assert.Equal(t, []Alias{{Trigger: "лотос", Replacement: "lotus"}}, tables.Aliases.Entries())
	assert.Equal(t, []string{"Лотос", "Lotus"}, tables.Synonyms.GroupOf("lotus"))
}

func TestLoadReferenceTables_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"synonyms": [["X", "Y"]]}`), 0o644))

	tables, err := LoadReferenceTables(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAliasTable().Len(), tables.Aliases.Len())
	assert.Equal(t, 1, tables.Synonyms.Len())
}

func TestLoadReferenceTables_Errors(t *testing.T) {
	_, err := LoadReferenceTables(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"aliases": [`), 0o644))
	_, err = LoadReferenceTables(path)
	assert.Error(t, err)
}
