package formatting

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"brokersearch/server/services"
)

// Ограничения длины сообщений чата
const (
	MaxMessageLength = 4000
	ChunkLength      = 3500
	MaxListedObjects = 10
)

// BrokerReply текст ответа на поиск по объекту
func BrokerReply(result services.BrokerSearchResult) string {
	switch r := result.(type) {
	case services.BrokersFound:
		header := r.Object
		if len(r.Objects) > 1 {
			header = strings.Join(r.Objects, " / ")
		}
		lines := make([]string, 0, len(r.Brokers))
		for _, b := range r.Brokers {
			lines = append(lines, "• "+b)
		}
		return fmt.Sprintf("🏠 %s\n\nЗа последние %d дней показы вели:\n%s", header, r.Days, strings.Join(lines, "\n"))

	case services.ObjectSuggested:
		return fmt.Sprintf("🔍 Точного совпадения не найдено.\n\nВозможно, вы имели в виду: **%s**?\n\nВведите точное название для поиска.", r.Object)

	case services.ObjectNotFound:
		return fmt.Sprintf("🔍 По запросу «%s» ничего не найдено.\n\nПроверьте написание и попробуйте снова.", r.Query)

	case services.NoDataInPeriod:
		return ErrorReply(r.Message())
	}
	return ""
}

// DistrictReplies сообщения ответа на поиск по району.
// Длинный ответ делится на сводку и части не длиннее ChunkLength.
func DistrictReplies(result services.DistrictSearchResult) []string {
	switch r := result.(type) {
	case services.DistrictBrokers:
		return districtBrokersReplies(r)

	case services.DistrictWithoutShowings:
		shown := r.ObjectsInDistrict
		if len(shown) > MaxListedObjects {
			shown = shown[:MaxListedObjects]
		}
		lines := make([]string, 0, len(shown))
		for _, obj := range shown {
			lines = append(lines, "• "+obj)
		}
		list := strings.Join(lines, "\n")
		if rest := len(r.ObjectsInDistrict) - MaxListedObjects; rest > 0 {
			list += fmt.Sprintf("\n...и ещё %d", rest)
		}
		return []string{fmt.Sprintf("📍 **%s** (%s)\n\nЖК в этом районе:\n%s\n\n❌ За последние %d дней показов в этих ЖК не было.",
			r.District, r.City, list, r.Days)}

	case services.DistrictNotFound:
		if r.Suggestion != "" {
			return []string{fmt.Sprintf("🔍 Район «%s» не найден.\n\nВозможно, вы имели в виду: **%s**?", r.Query, r.Suggestion)}
		}
		return []string{fmt.Sprintf("🔍 Район «%s» не найден в справочнике.\n\nПроверьте написание и попробуйте снова.", r.Query)}

	case services.NoDataInPeriod:
		return []string{ErrorReply(r.Message())}
	}
	return nil
}

func districtBrokersReplies(r services.DistrictBrokers) []string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📍 **%s** (%s)\n", r.District, r.City)
	fmt.Fprintf(&sb, "За последние %d дней:\n", r.Days)
	for _, obj := range r.ByObject {
		fmt.Fprintf(&sb, "\n🏠 **%s**:\n%s", obj.Object, strings.Join(obj.Brokers, ", "))
	}
	fmt.Fprintf(&sb, "\n\n_Всего брокеров: %d_", r.TotalBrokers)

	full := sb.String()
	if utf8.RuneCountInString(full) <= MaxMessageLength {
		return []string{full}
	}

	messages := []string{fmt.Sprintf("📍 **%s** (%s)\n\nЗа последние %d дней найдено %d ЖК с показами.\nВсего брокеров: %d",
		r.District, r.City, r.Days, len(r.ByObject), r.TotalBrokers)}

	chunk := ""
	for _, obj := range r.ByObject {
		line := fmt.Sprintf("🏠 **%s**:\n%s\n\n", obj.Object, strings.Join(obj.Brokers, ", "))
		if utf8.RuneCountInString(chunk)+utf8.RuneCountInString(line) > ChunkLength && chunk != "" {
			messages = append(messages, chunk)
			chunk = line
		} else {
			chunk += line
		}
	}
	if chunk != "" {
		messages = append(messages, chunk)
	}
	return messages
}

// ErrorReply текст ошибки для пользователя
func ErrorReply(message string) string {
	return "❌ Ошибка: " + message
}

// RoutedReplies сообщения ответа на произвольный запрос
func RoutedReplies(result *services.RoutedResult) []string {
	if result == nil {
		return nil
	}
	if result.District != nil {
		return DistrictReplies(result.District)
	}
	if result.Object != nil {
		return []string{BrokerReply(result.Object)}
	}
	return nil
}
