package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/hrnexus-poc/server/internal/core/error"
)

func testEmployees() []Employee {
	return []Employee{
		{ID: 1, Name: "Lina", Team: "Backend", Skills: []string{"Python", "Go"}, YearsOfExperience: 8},
		{ID: 2, Name: "Omar", Team: "Backend", Skills: []string{"Go", "Redis"}, YearsOfExperience: 5},
		{ID: 3, Name: "Sara", Team: "Frontend", Skills: []string{"React"}, YearsOfExperience: 2},
	}
}

func TestSearchEqualsCaseInsensitive(t *testing.T) {
	emps := testEmployees()

	got, err := Search(emps, employeeFields, "team", "backend", OpEquals)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Lina", got[0].Name)
	assert.Equal(t, "Omar", got[1].Name)

	got, err = Search(emps, employeeFields, "team", "frontend", OpEquals)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sara", got[0].Name)
}

func TestSearchListMembership(t *testing.T) {
	emps := testEmployees()

	// list fields accept case-insensitive membership under both operators
	forContains, err := Search(emps, employeeFields, "skills", "python", OpContains)
	require.NoError(t, err)
	forEquals, err := Search(emps, employeeFields, "skills", "python", OpEquals)
	require.NoError(t, err)

	require.Len(t, forContains, 1)
	require.Len(t, forEquals, 1)
	assert.Equal(t, "Lina", forContains[0].Name)
	assert.Equal(t, "Lina", forEquals[0].Name)
}

func TestSearchContainsSubstring(t *testing.T) {
	emps := testEmployees()

	got, err := Search(emps, employeeFields, "name", "ar", OpContains)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Omar", got[0].Name)
	assert.Equal(t, "Sara", got[1].Name)
}

func TestSearchNumericRange(t *testing.T) {
	emps := testEmployees()

	got, err := Search(emps, employeeFields, "years_of_experience", "5", OpGreaterThan)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 8, got[0].YearsOfExperience)

	got, err = Search(emps, employeeFields, "years_of_experience", "5", OpGreaterEqual)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Search(emps, employeeFields, "years_of_experience", "5", OpLessThan)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sara", got[0].Name)
}

func TestSearchMalformedNumericNarrowsSilently(t *testing.T) {
	emps := testEmployees()

	// a non-numeric value under an ordering operator matches nothing,
	// it never errors
	got, err := Search(emps, employeeFields, "years_of_experience", "banana", OpGreaterThan)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Search(emps, employeeFields, "years_of_experience", "banana", OpEquals)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchUnknownFieldReturnsTypedError(t *testing.T) {
	emps := testEmployees()

	_, err := Search(emps, employeeFields, "favorite_color", "blue", OpEquals)
	require.Error(t, err)

	var fieldErr *errx.FieldNotFoundError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "favorite_color", fieldErr.Field)
	assert.Equal(t, "Employee", fieldErr.Record)
}

func TestSearchUnknownOperatorMatchesNothing(t *testing.T) {
	emps := testEmployees()

	got, err := Search(emps, employeeFields, "team", "Backend", Operator("approximately"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchIsPureAndOrderPreserving(t *testing.T) {
	emps := testEmployees()

	first, err := Search(emps, employeeFields, "team", "Backend", OpEquals)
	require.NoError(t, err)
	second, err := Search(emps, employeeFields, "team", "Backend", OpEquals)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// input ordering survives filtering
	assert.Equal(t, []int{1, 2}, []int{first[0].ID, first[1].ID})
	// the source slice is untouched
	assert.Equal(t, testEmployees(), emps)
}

func TestSearchBoolAndFloatEquality(t *testing.T) {
	tickets := []Ticket{
		{ID: "HRN-1", Blocked: true},
		{ID: "HRN-2", Blocked: false},
	}
	got, err := Search(tickets, ticketFields, "blocked", "true", OpEquals)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "HRN-1", got[0].ID)

	services := []Service{
		{Name: "auth", UptimePercentage: 99.99},
		{Name: "leave", UptimePercentage: 99.2},
	}
	above, err := Search(services, serviceFields, "uptime_percentage", "99.9", OpGreaterThan)
	require.NoError(t, err)
	require.Len(t, above, 1)
	assert.Equal(t, "auth", above[0].Name)
}

func TestSearchObjectListContains(t *testing.T) {
	meetings := []Meeting{
		{
			ID: "MTG-1",
			ActionItems: []ActionItem{
				{AssignedTo: "Omar Khalil", Item: "Request timezone audit", DueDate: "2026-08-12"},
			},
		},
		{ID: "MTG-2"},
	}

	got, err := Search(meetings, meetingFields, "action_items", "timezone", OpContains)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MTG-1", got[0].ID)
}

func TestParseOperator(t *testing.T) {
	assert.Equal(t, OpEquals, ParseOperator(""))
	assert.Equal(t, OpEquals, ParseOperator("Equals"))
	assert.Equal(t, OpGreaterThan, ParseOperator(" GREATER_THAN "))
	assert.Equal(t, Operator("sideways"), ParseOperator("sideways"))
}
