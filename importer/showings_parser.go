package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"brokersearch/internal/domain/models"
)

// dateParseLayout допускает день и месяц без ведущего нуля
const dateParseLayout = "2.1.2006"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadShowings загружает выгрузку показов, формат определяется по расширению
func LoadShowings(path string) (*models.ShowingSet, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to stat showings file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseShowingsCSV(path)
	case ".xlsx", ".xlsm":
		return ParseShowingsXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported showings file format: %s", filepath.Ext(path))
	}
}

// ParseShowingsXLSX читает первый лист Excel-файла
func ParseShowingsXLSX(filePath string) (*models.ShowingSet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return BuildShowingSet(rows, filePath)
}

// ParseShowingsCSV читает CSV в UTF-8 или Windows-1251, разделитель ";" или ","
func ParseShowingsCSV(filePath string) (*models.ShowingSet, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	data, err = decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return BuildShowingSet(rows, filePath)
}

// decodeText приводит данные к UTF-8. Невалидный UTF-8 считается Windows-1251.
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Windows-1251: %w", err)
	}
	return decoded, nil
}

func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// BuildShowingSet строит снимок из строк таблицы, первая строка содержит заголовок.
// Отсутствие обязательной колонки или некорректная дата в любой строке
// прерывают загрузку целиком. Полностью пустые строки пропускаются.
func BuildShowingSet(rows [][]string, source string) (*models.ShowingSet, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnError{Column: models.RequiredColumns[0]}
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		name := strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if _, exists := headerMap[name]; !exists {
			headerMap[name] = i
		}
	}

	for _, col := range models.RequiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}
	statusIdx, hasStatus := headerMap[models.ColumnStatus]

	set := &models.ShowingSet{
		Rows:      make([]models.Showing, 0, len(rows)-1),
		HasStatus: hasStatus,
		Source:    source,
		LoadedAt:  time.Now(),
	}

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		// Номер строки как в таблице: заголовок в строке 1
		rowNum := i + 2

		rawDate := cell(row, headerMap[models.ColumnDate])
		date, err := ParseShowingDate(rawDate)
		if err != nil {
			return nil, &DateParseError{Row: rowNum, Value: rawDate, Err: err}
		}

		showing := models.Showing{
			Broker: strings.TrimSpace(cell(row, headerMap[models.ColumnBroker])),
			Date:   date,
			Object: cell(row, headerMap[models.ColumnObject]),
		}
		if hasStatus {
			showing.Status = strings.TrimSpace(cell(row, statusIdx))
		}
		set.Rows = append(set.Rows, showing)
	}

	return set, nil
}

// ParseShowingDate разбирает дату DD.MM.YYYY в локальном часовом поясе
func ParseShowingDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.ParseInLocation(dateParseLayout, value, time.Local)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
