package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"brokersearch/districts"
	"brokersearch/internal/domain/models"
)

// demoObjects объекты демо-справочника; часть названий записана так,
// как они встречаются в выгрузке (латиница, вторичка, опечатки)
var demoObjects = []districts.Record{
	{Object: "Шагал", District: "Даниловский", City: "Москва", Country: "Россия"},
	{Object: "Shagal", District: "Даниловский", City: "Москва", Country: "Россия"},
	{Object: "Прайм парк", District: "Хорошевский", City: "Москва", Country: "Россия"},
	{Object: "Prime Park", District: "Хорошевский", City: "Москва", Country: "Россия"},
	{Object: "Поклонная 9", District: "Дорогомилово", City: "Москва", Country: "Россия"},
	{Object: "Покланная 9", District: "Дорогомилово", City: "Москва", Country: "Россия"},
	{Object: "Садовые кварталы", District: "Хамовники", City: "Москва", Country: "Россия"},
	{Object: "Вторичка Садовые кварталы", District: "Хамовники", City: "Москва", Country: "Россия"},
	{Object: "Soul", District: "Аэропорт", City: "Москва", Country: "Россия"},
	{Object: "Слава", District: "Беговой", City: "Москва", Country: "Россия"},
	{Object: "Canal Front Residences 3", District: "Al Wasl", City: "Дубай", Country: "ОАЭ"},
	{Object: "Cloud Tower", District: "JVT", City: "Дубай", Country: "ОАЭ"},
	{Object: "Marina Vista", District: "Dubai Marina", City: "Дубай", Country: "ОАЭ"},
	{Object: "Таврический", District: "Центральный", City: "Санкт-Петербург", Country: "Россия"},
}

var demoBrokers = []string{
	"Иванов Алексей", "Петрова Мария", "Сидоров Дмитрий", "Кузнецова Анна",
	"Орлов Павел", "Смирнова Елена", "Волков Игорь", "Морозова Ольга",
}

var demoStatuses = []string{"Проведен", "Проведен", "Проведен", "Отменен", "Перенесен"}

// generateShowings создает count показов за последние days дней
func generateShowings(faker *gofakeit.Faker, count, days int, now time.Time) []models.Showing {
	start := now.AddDate(0, 0, -days)
	rows := make([]models.Showing, 0, count)
	for i := 0; i < count; i++ {
		obj := demoObjects[faker.Number(0, len(demoObjects)-1)]
		rows = append(rows, models.Showing{
			Broker: faker.RandomString(demoBrokers),
			Date:   faker.DateRange(start, now),
			Object: obj.Object,
			Status: faker.RandomString(demoStatuses),
		})
	}
	return rows
}

// writeShowingsXLSX записывает показы в формате выгрузки CRM
func writeShowingsXLSX(path string, rows []models.Showing) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{models.ColumnBroker, models.ColumnDate, models.ColumnObject, models.ColumnStatus}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.Broker, r.Date.Format(models.DateLayout), r.Object, r.Status}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// encodeDistricts сериализует справочник с сохранением порядка объектов
func encodeDistricts(records []districts.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"objects\": {")
	for i, r := range records {
		name, err := json.Marshal(r.Object)
		if err != nil {
			return nil, err
		}
		info, err := json.Marshal(map[string]string{
			"district": r.District,
			"city":     r.City,
			"country":  r.Country,
		})
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "\n    %s: %s", name, info)
	}
	buf.WriteString("\n  }\n}\n")
	return buf.Bytes(), nil
}

func main() {
	outDir := flag.String("out", "data", "Каталог для демо-данных")
	count := flag.Int("count", 500, "Количество показов")
	days := flag.Int("days", 90, "Период показов в днях")
	seed := flag.Int64("seed", 0, "Seed генератора (0 означает случайный)")
	flag.Parse()

	faker := gofakeit.New(*seed)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	rows := generateShowings(faker, *count, *days, time.Now())
	showingsPath := filepath.Join(*outDir, "showings.xlsx")
	if err := writeShowingsXLSX(showingsPath, rows); err != nil {
		log.Fatalf("Failed to write showings: %v", err)
	}
	fmt.Printf("Generated %d showings: %s\n", len(rows), showingsPath)

	data, err := encodeDistricts(demoObjects)
	if err != nil {
		log.Fatalf("Failed to encode districts: %v", err)
	}
	districtsPath := filepath.Join(*outDir, "districts.json")
	if err := os.WriteFile(districtsPath, data, 0644); err != nil {
		log.Fatalf("Failed to write districts: %v", err)
	}
	fmt.Printf("Generated %d district records: %s\n", len(demoObjects), districtsPath)
}
