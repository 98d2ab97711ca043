package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"brokersearch/internal/domain/models"
	"brokersearch/normalization"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAggregate_SynonymClosure(t *testing.T) {
	rows := []models.Showing{
		{Broker: "Петров", Object: "Шагал", Date: day(2025, time.March, 10)},
		{Broker: " Иванов ", Object: "SHAGAL", Date: day(2025, time.March, 11)},
		{Broker: "Иванов", Object: "Шагал", Date: day(2025, time.March, 12)},
		{Broker: "Сидоров", Object: "Soul", Date: day(2025, time.March, 12)},
		{Broker: "  ", Object: "Shagal", Date: day(2025, time.March, 12)},
	}
	group := normalization.DefaultSynonymGroups().GroupOf("Шагал")

	result := Aggregate(rows, group, day(2025, time.March, 1), "")

	assert.Equal(t, []string{"Иванов", "Петров"}, result.Brokers)
	assert.Equal(t, []string{"Шагал", "SHAGAL", "Shagal"}, result.Objects)
}

func TestAggregate_DateBoundary(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)
	cutoff := models.DayCutoff(now, 14)
	rows := []models.Showing{
		{Broker: "Ровно на границе", Object: "Soul", Date: day(2025, time.March, 1)},
		{Broker: "На день раньше", Object: "Soul", Date: day(2025, time.February, 28)},
	}

	result := Aggregate(rows, []string{"Soul"}, cutoff, "")

	assert.Equal(t, []string{"Ровно на границе"}, result.Brokers)
}

func TestAggregate_ExcludeStatus(t *testing.T) {
	rows := []models.Showing{
		{Broker: "Иванов", Object: "Soul", Status: "Проведен", Date: day(2025, time.March, 10)},
		{Broker: "Петров", Object: "Soul", Status: "Отменен", Date: day(2025, time.March, 10)},
	}

	result := Aggregate(rows, []string{"Soul"}, day(2025, time.March, 1), " Отменен ")
	assert.Equal(t, []string{"Иванов"}, result.Brokers)

	result = Aggregate(rows, []string{"Soul"}, day(2025, time.March, 1), "")
	assert.Equal(t, []string{"Иванов", "Петров"}, result.Brokers)
}

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil, []string{"Soul"}, day(2025, time.March, 1), "")

	assert.NotNil(t, result.Brokers)
	assert.Empty(t, result.Brokers)
	assert.Empty(t, result.Objects)
}
