package formatting

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokersearch/server/services"
)

func TestBrokerReply_Found(t *testing.T) {
	reply := BrokerReply(services.BrokersFound{
		Object:  "Шагал",
		Objects: []string{"Шагал", "Shagal"},
		Days:    60,
		Brokers: []string{"Иванов", "Петров"},
	})

	assert.Equal(t, "🏠 Шагал / Shagal\n\nЗа последние 60 дней показы вели:\n• Иванов\n• Петров", reply)
}

func TestBrokerReply_SingleObjectHeader(t *testing.T) {
	reply := BrokerReply(services.BrokersFound{Object: "Soul", Objects: []string{"Soul"}, Days: 60, Brokers: []string{"Иванов"}})

	assert.True(t, strings.HasPrefix(reply, "🏠 Soul\n"))
}

func TestBrokerReply_SuggestionHasNoBrokers(t *testing.T) {
	reply := BrokerReply(services.ObjectSuggested{Query: "Шыгал", Object: "Shagal", Score: 83, Days: 60})

	assert.Contains(t, reply, "Возможно, вы имели в виду: **Shagal**?")
	assert.NotContains(t, reply, "•")
}

func TestBrokerReply_NotFoundAndNoData(t *testing.T) {
	assert.Contains(t, BrokerReply(services.ObjectNotFound{Query: "xyz"}), "«xyz» ничего не найдено")
	assert.Equal(t, "❌ Ошибка: Нет данных за указанный период", BrokerReply(services.NoDataInPeriod{}))
}

func TestDistrictReplies_WithoutShowingsTruncatesList(t *testing.T) {
	objects := make([]string, 13)
	for i := range objects {
		objects[i] = fmt.Sprintf("ЖК %d", i+1)
	}

	replies := DistrictReplies(services.DistrictWithoutShowings{
		District: "Хамовники", City: "Москва", Days: 60, ObjectsInDistrict: objects,
	})

	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "• ЖК 10\n...и ещё 3")
	assert.NotContains(t, replies[0], "ЖК 11")
	assert.Contains(t, replies[0], "За последние 60 дней показов в этих ЖК не было")
}

func TestDistrictReplies_NotFound(t *testing.T) {
	replies := DistrictReplies(services.DistrictNotFound{Query: "Хамовнки", Suggestion: "Хамовники (Москва)"})
	assert.Equal(t, []string{"🔍 Район «Хамовнки» не найден.\n\nВозможно, вы имели в виду: **Хамовники (Москва)**?"}, replies)

	replies = DistrictReplies(services.DistrictNotFound{Query: "qqq"})
	assert.Contains(t, replies[0], "не найден в справочнике")
}

func TestDistrictReplies_Short(t *testing.T) {
	replies := DistrictReplies(services.DistrictBrokers{
		District: "Хорошевский", City: "Москва", Days: 60,
		ByObject: []services.ObjectBrokers{
			{Object: "Prime Park", Brokers: []string{"Кузнецов", "Орлов"}},
		},
		TotalBrokers: 2,
	})

	assert.Equal(t, []string{
		"📍 **Хорошевский** (Москва)\nЗа последние 60 дней:\n\n🏠 **Prime Park**:\nКузнецов, Орлов\n\n_Всего брокеров: 2_",
	}, replies)
}

func TestDistrictReplies_LongIsChunked(t *testing.T) {
	var byObject []services.ObjectBrokers
	for i := 0; i < 60; i++ {
		byObject = append(byObject, services.ObjectBrokers{
			Object:  fmt.Sprintf("Объект номер %d", i),
			Brokers: []string{strings.Repeat("Брокер", 10), strings.Repeat("Агент", 10)},
		})
	}

	replies := DistrictReplies(services.DistrictBrokers{
		District: "Al Wasl", City: "Дубай", Days: 60, ByObject: byObject, TotalBrokers: 2,
	})

	require.Greater(t, len(replies), 2)
	assert.Contains(t, replies[0], "найдено 60 ЖК с показами")
	total := 0
	for _, chunk := range replies[1:] {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), ChunkLength)
		total += strings.Count(chunk, "🏠")
	}
	assert.Equal(t, 60, total)
}

func TestRoutedReplies(t *testing.T) {
	assert.Nil(t, RoutedReplies(nil))

	replies := RoutedReplies(&services.RoutedResult{
		Kind:   services.QueryKindObject,
		Object: services.ObjectNotFound{Query: "abc"},
	})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "abc")
}
