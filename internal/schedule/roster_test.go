package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokim/shuttleboard/internal/domain"
	"github.com/dokim/shuttleboard/internal/schedule"
)

func person(id, name string, assign map[domain.DayKey]domain.DayAssignment) domain.Person {
	return domain.Person{ID: id, Name: name, Assign: assign}
}

func monPickup(place string) map[domain.DayKey]domain.DayAssignment {
	return map[domain.DayKey]domain.DayAssignment{
		domain.Mon: {PickupPlace: place},
	}
}

func TestBuildRoster_groupsByPlaceInInputOrder(t *testing.T) {
	people := []domain.Person{
		person("p1", "Kim", monPickup("Oak")),
		person("p2", "Lee", monPickup("Elm")),
		person("p3", "Park", monPickup("Oak")),
	}

	byPlace, index := schedule.BuildRoster(people, domain.Mon, domain.Pickup)

	assert.Equal(t, []string{"Kim", "Park"}, byPlace["Oak"])
	assert.Equal(t, []string{"Lee"}, byPlace["Elm"])
	assert.Equal(t, schedule.RosterEntry{Name: "Kim", Place: "Oak"}, index["p1"])
	assert.Equal(t, schedule.RosterEntry{Name: "Park", Place: "Oak"}, index["p3"])
}

func TestBuildRoster_skipsBlankNamesAndPlaces(t *testing.T) {
	people := []domain.Person{
		person("p1", "   ", monPickup("Oak")), // blank name
		person("p2", "Lee", monPickup("  ")),  // blank place
		person("p3", "Park", nil),             // no assignment at all
		person("p4", "Choi", monPickup("Oak")),
	}

	byPlace, index := schedule.BuildRoster(people, domain.Mon, domain.Pickup)

	assert.Equal(t, []string{"Choi"}, byPlace["Oak"])
	require.Len(t, index, 1)
	assert.Contains(t, index, "p4")
}

func TestBuildRoster_directionsAreIndependent(t *testing.T) {
	people := []domain.Person{
		person("p1", "Kim", map[domain.DayKey]domain.DayAssignment{
			domain.Mon: {PickupPlace: "Oak", DropoffPlace: "Home"},
		}),
	}

	pickup, _ := schedule.BuildRoster(people, domain.Mon, domain.Pickup)
	dropoff, _ := schedule.BuildRoster(people, domain.Mon, domain.Dropoff)

	assert.Equal(t, []string{"Kim"}, pickup["Oak"])
	assert.Equal(t, []string{"Kim"}, dropoff["Home"])
	assert.NotContains(t, dropoff, "Oak")
}

func TestBuildRoster_otherDayContributesNothing(t *testing.T) {
	people := []domain.Person{person("p1", "Kim", monPickup("Oak"))}

	byPlace, index := schedule.BuildRoster(people, domain.Tue, domain.Pickup)

	assert.Empty(t, byPlace)
	assert.Empty(t, index)
}

func TestBuildRoster_trimsNamesAndPlaces(t *testing.T) {
	people := []domain.Person{person("p1", "  Kim ", monPickup(" Oak "))}

	byPlace, index := schedule.BuildRoster(people, domain.Mon, domain.Pickup)

	assert.Equal(t, []string{"Kim"}, byPlace["Oak"])
	assert.Equal(t, schedule.RosterEntry{Name: "Kim", Place: "Oak"}, index["p1"])
}
