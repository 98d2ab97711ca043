package districts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const districtsJSON = `{
	"version": 2,
	"objects": {
		"Шагал": {"district": "Даниловский", "city": "Москва", "country": "Россия"},
		"Прайм парк": {"district": "Хорошевский", "city": "Москва", "country": "Россия"},
		"Canal Front Residences 3": {"district": "Al Wasl", "city": "Дубай", "country": "ОАЭ"}
	},
	"meta": {"source": "manual"}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseRecords_KeepsFileOrder(t *testing.T) {
	records, err := ParseRecords([]byte(districtsJSON))
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "Шагал", records[0].Object)
	assert.Equal(t, "Прайм парк", records[1].Object)
	assert.Equal(t, Record{Object: "Canal Front Residences 3", District: "Al Wasl", City: "Дубай", Country: "ОАЭ"}, records[2])
}

func TestParseRecords_Variants(t *testing.T) {
	records, err := ParseRecords([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ParseRecords([]byte(`{"objects": null}`))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ParseRecords([]byte(`{"objects": {"X": {"district": "D"}}}`))
	require.NoError(t, err)
	assert.Equal(t, []Record{{Object: "X", District: "D"}}, records)
}

func TestParseRecords_Errors(t *testing.T) {
	for _, input := range []string{
		``,
		`[]`,
		`{"objects": []}`,
		`{"objects": {"X": "строка"}}`,
		`{"objects": {"X": {"district": "D"}`,
	} {
		_, err := ParseRecords([]byte(input))
		assert.Error(t, err, input)
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "districts.json"))

	idx, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.AllKnownAreas())
}

func TestFileStore_CachesUntilFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "districts.json")
	writeFile(t, path, districtsJSON)
	store := NewFileStore(path)

	first, err := store.Load()
	require.NoError(t, err)
	second, err := store.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	writeFile(t, path, `{"objects": {"Soul": {"district": "Аэропорт", "city": "Москва", "country": "Россия"}}}`)
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	third, err := store.Load()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, []string{"Аэропорт (Москва)"}, third.AllKnownAreas())
}

func TestFileStore_Invalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "districts.json")
	writeFile(t, path, districtsJSON)
	store := NewFileStore(path)

	first, err := store.Load()
	require.NoError(t, err)
	store.Invalidate()
	second, err := store.Load()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Records(), second.Records())
}

func TestFileStore_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "districts.json")
	writeFile(t, path, `{"objects": {`)

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
