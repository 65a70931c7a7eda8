package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"employeedir/internal/directory/domain/entities"
)

func TestEmployeeInputRoundTrip(t *testing.T) {
	in := entities.EmployeeInput{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		Phone:            "05321234567",
		Department:       "Tech",
		Position:         "Senior",
		DateOfEmployment: "2020-01-02",
		DateOfBirth:      "1990-05-06",
	}

	e := in.ToEmployee(7)
	assert.Equal(t, 7, e.ID)
	assert.Equal(t, in, e.Input())
}

func TestEmployeeInputField(t *testing.T) {
	in := entities.EmployeeInput{FirstName: "Ada", DateOfBirth: "1990-05-06"}

	for _, name := range entities.Fields {
		_, ok := in.Field(name)
		assert.True(t, ok, name)
	}

	v, _ := in.Field(entities.FieldFirstName)
	assert.Equal(t, "Ada", v)

	_, ok := in.Field("salary")
	assert.False(t, ok)
}

func TestEmployeeFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", entities.Employee{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", entities.Employee{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", entities.Employee{LastName: "Lovelace"}.FullName())
}
