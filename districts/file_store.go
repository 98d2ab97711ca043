package districts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"
)

// FileStore читает справочник районов из JSON-файла вида
// {"objects": {"<объект>": {"district": "...", "city": "...", "country": "..."}}}.
// Разобранный справочник кэшируется до изменения времени модификации или размера файла.
type FileStore struct {
	path string

	mu      sync.RWMutex
	cached  *Index
	modTime time.Time
	size    int64
}

// NewFileStore создает хранилище справочника
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path путь к файлу справочника
func (s *FileStore) Path() string {
	return s.path
}

// Load возвращает актуальный справочник. Отсутствующий файл дает пустой справочник.
func (s *FileStore) Load() (*Index, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.reset()
			return NewIndex(nil), nil
		}
		return nil, fmt.Errorf("failed to stat districts file: %w", err)
	}

	s.mu.RLock()
	if s.cached != nil && s.modTime.Equal(info.ModTime()) && s.size == info.Size() {
		idx := s.cached
		s.mu.RUnlock()
		return idx, nil
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read districts file: %w", err)
	}
	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	idx := NewIndex(records)

	s.mu.Lock()
	s.cached = idx
	s.modTime = info.ModTime()
	s.size = info.Size()
	s.mu.Unlock()

	return idx, nil
}

// Invalidate сбрасывает кэш
func (s *FileStore) Invalidate() {
	s.reset()
}

func (s *FileStore) reset() {
	s.mu.Lock()
	s.cached = nil
	s.modTime = time.Time{}
	s.size = 0
	s.mu.Unlock()
}

type recordInfo struct {
	District string `json:"district"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// ParseRecords разбирает справочник, сохраняя порядок объектов из файла:
// от него зависит, какая запись задает район и город в результатах поиска.
func ParseRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var records []Record
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "objects" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("failed to parse districts file: %w", err)
			}
			continue
		}

		records, err = parseObjects(dec)
		if err != nil {
			return nil, err
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return records, nil
}

func parseObjects(dec *json.Decoder) ([]Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse districts file: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("failed to parse districts file: \"objects\" must be an object")
	}

	var records []Record
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var info recordInfo
		if err := dec.Decode(&info); err != nil {
			return nil, fmt.Errorf("failed to parse districts file: object %q: %w", name, err)
		}
		records = append(records, Record{
			Object:   name,
			District: info.District,
			City:     info.City,
			Country:  info.Country,
		})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return records, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("failed to parse districts file: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("failed to parse districts file: unexpected token %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse districts file: unexpected end of input")
		}
		return fmt.Errorf("failed to parse districts file: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("failed to parse districts file: expected %q, got %v", want, tok)
	}
	return nil
}
