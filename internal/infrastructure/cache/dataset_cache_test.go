package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brokersearch/internal/domain/models"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context) (*models.ShowingSet, error) {
	args := m.Called(ctx)
	set, _ := args.Get(0).(*models.ShowingSet)
	return set, args.Error(1)
}

func writeData(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestDatasetCache_ReusesUntilFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showings.xlsx")
	base := time.Now().Add(-time.Hour)
	writeData(t, path, "v1", base)

	first := &models.ShowingSet{Source: "v1"}
	second := &models.ShowingSet{Source: "v2"}
	loader := new(mockLoader)
	loader.On("Load", mock.Anything).Return(first, nil).Once()
	loader.On("Load", mock.Anything).Return(second, nil).Once()

	c := NewDatasetCache(loader, path)
	ctx := context.Background()

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, 1, c.Loads())

	writeData(t, path, "v2", base.Add(time.Minute))

	got, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 2, c.Loads())
	loader.AssertExpectations(t)
}

func TestDatasetCache_ErrorsAreNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showings.xlsx")
	writeData(t, path, "v1", time.Now())

	loadErr := errors.New("broken file")
	set := &models.ShowingSet{}
	loader := new(mockLoader)
	loader.On("Load", mock.Anything).Return(nil, loadErr).Once()
	loader.On("Load", mock.Anything).Return(set, nil).Once()

	c := NewDatasetCache(loader, path)

	_, err := c.Load(context.Background())
	assert.ErrorIs(t, err, loadErr)

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, set, got)
	loader.AssertExpectations(t)
}

func TestDatasetCache_MissingFilePassesThrough(t *testing.T) {
	notFound := errors.New("Файл данных не найден")
	loader := new(mockLoader)
	loader.On("Load", mock.Anything).Return(nil, notFound).Twice()

	c := NewDatasetCache(loader, filepath.Join(t.TempDir(), "missing.xlsx"))

	for i := 0; i < 2; i++ {
		_, err := c.Load(context.Background())
		assert.ErrorIs(t, err, notFound)
	}
	assert.Equal(t, 0, c.Loads())
	loader.AssertExpectations(t)
}

func TestDatasetCache_Invalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showings.xlsx")
	writeData(t, path, "v1", time.Now())

	loader := new(mockLoader)
	loader.On("Load", mock.Anything).Return(&models.ShowingSet{}, nil).Twice()

	c := NewDatasetCache(loader, path)
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	c.Invalidate()
	_, err = c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, c.Loads())
	loader.AssertExpectations(t)
}

func TestDatasetCache_WatchNotifiesAndInvalidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showings.xlsx")
	districts := filepath.Join(dir, "districts.json")
	writeData(t, path, "v1", time.Now())

	loader := new(mockLoader)
	loader.On("Load", mock.Anything).Return(&models.ShowingSet{}, nil)

	c := NewDatasetCache(loader, path)
	changed := make(chan string, 16)
	c.OnChange(func(p string) { changed <- p })

	require.NoError(t, c.Watch(districts))
	defer c.Stop()
	assert.Error(t, c.Watch(), "повторный запуск наблюдения")

	require.NoError(t, os.WriteFile(districts, []byte(`{"objects": {}}`), 0o644))

	select {
	case p := <-changed:
		assert.Equal(t, "districts.json", filepath.Base(p))
	case <-time.After(5 * time.Second):
		t.Fatal("не получено событие изменения файла")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
}
