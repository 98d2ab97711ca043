package importer

import (
	"context"

	"brokersearch/internal/domain/models"
)

// FileSource источник показов из файла выгрузки (xlsx или csv).
// Каждый вызов Load перечитывает файл.
type FileSource struct {
	path string
}

// NewFileSource создает источник для файла
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path путь к файлу выгрузки
func (s *FileSource) Path() string {
	return s.path
}

// Load загружает снимок показов
func (s *FileSource) Load(ctx context.Context) (*models.ShowingSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadShowings(s.path)
}
