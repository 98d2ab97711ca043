package normalization

import (
	"encoding/json"
	"fmt"
	"os"
)

// defaultAliases фонетические соответствия, опечатки выгрузки и альтернативные написания.
// Порядок важен: варианты запроса строятся в порядке словаря.
var defaultAliases = []Alias{
	// Фонетика: кириллица → латиница
	{"клауд", "cloud"},
	{"клауд тауэр", "cloud tower"},
	{"тауэр", "tower"},
	{"гранд", "grand"},
	{"гарден", "garden"},
	{"вест гарден", "west garden"},
	{"вест", "west"},
	{"резиденс", "residences"},
	{"пиннакл", "pinnacle"},
	{"марина", "marina"},
	{"канал", "canal"},
	{"фронт", "front"},
	{"панорамик", "panoramic"},
	{"стелла", "stella"},
	{"марис", "maris"},
	{"вида", "vida"},
	{"крик", "creek"},
	{"бич", "beach"},

	// В выгрузке название записано с опечаткой
	{"поклонная", "покланная"},

	// Альтернативные написания
	{"праймпарк", "прайм парк"},
	{"прайм", "прайм парк"},
	{"артхаус", "артхаус"},
	{"веллтон", "веллтон тауэрс"},
	{"квартал на ленинском", "жк квартал на ленинском"},
}

// defaultSynonymGroups объекты, которые являются одним ЖК
var defaultSynonymGroups = [][]string{
	// Кириллица ↔ латиница
	{"Прайм парк", "Prime Park"},
	{"Шагал", "Shagal"},
	{"Соул", "Soul"},
	{"Слава", "Slava"},
	{"Ракурс", "Rakurs"},
	{"Принципал плаза", "Principal Plaza"},
	{"Примавера новая", "Primavera"},
	{"Синатра", "Sinatra вторичка"},
	{"Балчуг резиденс", "Balchug Residence"},
	{"Сидней Сити", "Sidney City", "Sydney city"},

	// Вторичка = первичка
	{"Башня Федерация", "Башня Федерация вторичка"},
	{"Садовые кварталы", "Вторичка Садовые кварталы"},
	{"Династия", "Вторичка Династия"},
	{"Knightsbridge Private Park", "Вторичка Knightsbridge Private Park"},
	{"Остров", "Остров Вторичка"},
	{"ЖК Крылья", "Крылья вторичка"},

	// Разные написания
	{"ЖК Таврический", "Таврический"},
	{"Дом в Николино", "Николино"},
	{"Башня Город Столиц", "Город Столиц"},
	{"Level Мичуринский", "Мичуринский"},
	{"Canal Front", "Canal Front Residences 3"},
	{"Поклонная 9", "Поклонная, 9", "Покланная 9"},

	// Опечатки
	{"Lucky", "Lacky"},
}

// DefaultAliasTable встроенный словарь алиасов
func DefaultAliasTable() *AliasTable {
	return NewAliasTable(defaultAliases)
}

// DefaultSynonymGroups встроенные группы синонимов
func DefaultSynonymGroups() *SynonymGroups {
	return NewSynonymGroups(defaultSynonymGroups)
}

// ReferenceTables справочники, загружаемые один раз при старте
type ReferenceTables struct {
	Aliases  *AliasTable
	Synonyms *SynonymGroups
}

// referenceFile формат файла с переопределением справочников
type referenceFile struct {
	Aliases  []Alias   `json:"aliases"`
	Synonyms [][]string `json:"synonyms"`
}

// DefaultReferenceTables встроенные справочники
func DefaultReferenceTables() *ReferenceTables {
	return &ReferenceTables{
		Aliases:  DefaultAliasTable(),
		Synonyms: DefaultSynonymGroups(),
	}
}

// LoadReferenceTables читает справочники из JSON-файла.
// Пустой путь означает встроенные справочники; отсутствующий в файле
// раздел также берется из встроенных.
func LoadReferenceTables(path string) (*ReferenceTables, error) {
	tables := DefaultReferenceTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file %s: %w", path, err)
	}

	var file referenceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse reference file %s: %w", path, err)
	}

	if file.Aliases != nil {
		tables.Aliases = NewAliasTable(file.Aliases)
	}
	if file.Synonyms != nil {
		tables.Synonyms = NewSynonymGroups(file.Synonyms)
	}

	return tables, nil
}
