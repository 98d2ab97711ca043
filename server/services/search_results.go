package services

import (
	"encoding/json"
	"errors"
)

// Статусы результатов поиска в API
const (
	StatusFound      = "found"
	StatusSuggestion = "suggestion"
	StatusNotFound   = "not_found"
	StatusNoData     = "no_data"
	StatusNoShowings = "no_showings"
)

// ErrNoDataInPeriod в окне поиска нет ни одного показа.
// Отличается от «объект не найден»: данных нет вообще.
var ErrNoDataInPeriod = errors.New("Нет данных за указанный период")

// BrokerSearchResult результат поиска брокеров по объекту:
// BrokersFound, ObjectSuggested, ObjectNotFound или NoDataInPeriod
type BrokerSearchResult interface {
	Status() string
	brokerSearchResult()
}

// DistrictSearchResult результат поиска по району:
// DistrictBrokers, DistrictWithoutShowings, DistrictNotFound или NoDataInPeriod
type DistrictSearchResult interface {
	Status() string
	districtSearchResult()
}

// BrokersFound объект найден детерминированно, брокеры собраны по всей группе синонимов
type BrokersFound struct {
	Query   string   `json:"query"`
	Object  string   `json:"object"`
	Objects []string `json:"objects"`
	Days    int      `json:"days"`
	Brokers []string `json:"brokers"`
	Score   int      `json:"score"`
	Tier    string   `json:"tier"`
}

// ObjectSuggested найден только похожий объект. Брокеры не собираются:
// пользователь должен подтвердить название.
type ObjectSuggested struct {
	Query  string `json:"query"`
	Object string `json:"object"`
	Days   int    `json:"days"`
	Score  int    `json:"score"`
}

// ObjectNotFound ни один уровень каскада не дал совпадения
type ObjectNotFound struct {
	Query string `json:"query"`
	Days  int    `json:"days"`
}

// NoDataInPeriod в окне поиска нет показов
type NoDataInPeriod struct {
	Query string `json:"query"`
	Days  int    `json:"days"`
}

// ObjectBrokers брокеры одного объекта района
type ObjectBrokers struct {
	Object  string   `json:"object"`
	Brokers []string `json:"brokers"`
}

// DistrictBrokers брокеры по объектам района в порядке первого показа
type DistrictBrokers struct {
	Query        string          `json:"query"`
	District     string          `json:"district"`
	City         string          `json:"city"`
	Days         int             `json:"days"`
	ByObject     []ObjectBrokers `json:"by_object"`
	TotalBrokers int             `json:"total_brokers"`
}

// DistrictWithoutShowings район есть в справочнике, но показов в его объектах не было
type DistrictWithoutShowings struct {
	Query             string   `json:"query"`
	District          string   `json:"district"`
	City              string   `json:"city"`
	Days              int      `json:"days"`
	ObjectsInDistrict []string `json:"objects_in_district"`
}

// DistrictNotFound район не найден; Suggestion заполнен, если есть похожий
type DistrictNotFound struct {
	Query      string `json:"query"`
	Days       int    `json:"days"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (BrokersFound) Status() string            { return StatusFound }
func (ObjectSuggested) Status() string         { return StatusSuggestion }
func (ObjectNotFound) Status() string          { return StatusNotFound }
func (NoDataInPeriod) Status() string          { return StatusNoData }
func (DistrictBrokers) Status() string         { return StatusFound }
func (DistrictWithoutShowings) Status() string { return StatusNoShowings }
func (DistrictNotFound) Status() string        { return StatusNotFound }

func (BrokersFound) brokerSearchResult()    {}
func (ObjectSuggested) brokerSearchResult() {}
func (ObjectNotFound) brokerSearchResult()  {}
func (NoDataInPeriod) brokerSearchResult()  {}

func (DistrictBrokers) districtSearchResult()         {}
func (DistrictWithoutShowings) districtSearchResult() {}
func (DistrictNotFound) districtSearchResult()        {}
func (NoDataInPeriod) districtSearchResult()          {}

// Message текст условия «нет данных»
func (NoDataInPeriod) Message() string {
	return ErrNoDataInPeriod.Error()
}

type envelope struct {
	Status string `json:"status"`
	Found  bool   `json:"found"`
}

func (r BrokersFound) MarshalJSON() ([]byte, error) {
	type plain BrokersFound
	return json.Marshal(struct {
		envelope
		Exact bool `json:"exact"`
		plain
	}{envelope{r.Status(), true}, true, plain(r)})
}

func (r ObjectSuggested) MarshalJSON() ([]byte, error) {
	type plain ObjectSuggested
	return json.Marshal(struct {
		envelope
		Exact bool `json:"exact"`
		plain
	}{envelope{r.Status(), true}, false, plain(r)})
}

func (r ObjectNotFound) MarshalJSON() ([]byte, error) {
	type plain ObjectNotFound
	return json.Marshal(struct {
		envelope
		plain
	}{envelope{r.Status(), false}, plain(r)})
}

func (r NoDataInPeriod) MarshalJSON() ([]byte, error) {
	type plain NoDataInPeriod
	return json.Marshal(struct {
		envelope
		Message string `json:"message"`
		plain
	}{envelope{r.Status(), false}, r.Message(), plain(r)})
}

func (r DistrictBrokers) MarshalJSON() ([]byte, error) {
	type plain DistrictBrokers
	return json.Marshal(struct {
		envelope
		plain
	}{envelope{r.Status(), true}, plain(r)})
}

func (r DistrictWithoutShowings) MarshalJSON() ([]byte, error) {
	type plain DistrictWithoutShowings
	return json.Marshal(struct {
		envelope
		NoShowings bool `json:"no_showings"`
		plain
	}{envelope{r.Status(), true}, true, plain(r)})
}

func (r DistrictNotFound) MarshalJSON() ([]byte, error) {
	type plain DistrictNotFound
	return json.Marshal(struct {
		envelope
		plain
	}{envelope{r.Status(), false}, plain(r)})
}
