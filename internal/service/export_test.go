package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokim/shuttleboard/internal/docstore"
	"github.com/dokim/shuttleboard/internal/domain"
)

func TestBoard_exportDayFlattensBothDirections(t *testing.T) {
	mem := docstore.NewMemory()
	require.NoError(t, mem.Merge(context.Background(), appRef, map[string]any{
		"routes": map[string]any{
			"tue": map[string]any{
				"pickup":  []domain.Stop{{ID: "s1", Time: "08:00", Place: "Oak"}},
				"dropoff": []domain.Stop{{ID: "s2", Time: "16:30", Place: "Oak"}},
			},
		},
		"people": []domain.Person{
			{ID: "p1", Name: "Kim", Assign: map[domain.DayKey]domain.DayAssignment{
				domain.Tue: {PickupPlace: "Oak", DropoffPlace: "Oak"},
			}},
		},
	}))
	b := startBoard(t, mem, nil)
	waitForLine(t, b)

	rows, err := b.ExportDay("")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, testDate, rows[0].Date)
	assert.Equal(t, domain.Tue, rows[0].DayKey)
	assert.Equal(t, domain.Pickup, rows[0].Direction)
	assert.Equal(t, "08:00", rows[0].Time)
	assert.Equal(t, domain.Dropoff, rows[1].Direction)
	assert.Equal(t, "16:30", rows[1].Time)
	assert.Equal(t, []string{"Kim"}, rows[1].Names)
}

func TestBoard_exportSpecificDay(t *testing.T) {
	mem := docstore.NewMemory()
	seedSchedule(t, mem, nil)
	b := startBoard(t, mem, nil)
	waitForLine(t, b)

	rows, err := b.ExportDay(domain.Wed)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	_, err = b.ExportDay(domain.DayKey("sun"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
