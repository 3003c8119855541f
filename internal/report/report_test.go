package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocdesk/internal/domain"
)

func sampleRecords() []*domain.UsecaseRecord {
	return []*domain.UsecaseRecord{
		{ProcessType: domain.ProcessPOC, Status: domain.UsecaseOngoing, Region: "South", CustomerType: domain.CustomerDirect},
		{ProcessType: domain.ProcessPOC, Status: domain.UsecaseCompleted, Region: "South", CustomerType: domain.CustomerPartner},
		{ProcessType: domain.ProcessDemo, Status: domain.UsecaseOngoing, Region: "North", CustomerType: domain.CustomerDirect},
		{ProcessType: domain.ProcessUsecase, Status: domain.UsecaseOngoing, Region: "", CustomerType: domain.CustomerDirect},
	}
}

func TestAggregate_CountsEveryDimension(t *testing.T) {
	s := Aggregate(sampleRecords())

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.ByProcessType["POC"])
	assert.Equal(t, 1, s.ByProcessType["Demo"])
	assert.Equal(t, 1, s.ByProcessType["Usecase"])
	assert.Equal(t, 3, s.ByStatus["Ongoing"])
	assert.Equal(t, 1, s.ByStatus["Completed"])
	assert.Equal(t, 2, s.ByRegion["South"])
	assert.Equal(t, 3, s.ByCustomerType["Direct"])
}

func TestAggregate_EmptyValueCountsAsUnspecified(t *testing.T) {
	s := Aggregate(sampleRecords())
	assert.Equal(t, 1, s.ByRegion["Unspecified"])

	total := 0
	for _, c := range s.ByRegion {
		total += c
	}
	assert.Equal(t, s.Total, total)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByStatus)
}

func TestRows_StableOrder(t *testing.T) {
	rows := Rows(map[string]int{"Demo": 1, "POC": 2, "Usecase": 1})
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Label: "POC", Count: 2}, rows[0])
	// Equal counts tie-break alphabetically.
	assert.Equal(t, Row{Label: "Demo", Count: 1}, rows[1])
	assert.Equal(t, Row{Label: "Usecase", Count: 1}, rows[2])
}

func TestMaxCount(t *testing.T) {
	assert.Equal(t, 0, MaxCount(nil))
	assert.Equal(t, 5, MaxCount(map[string]int{"a": 3, "b": 5, "c": 1}))
}
