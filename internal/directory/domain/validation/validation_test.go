package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/domain/validation"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsEmailUnique(email string, excludeID int) bool {
	args := m.Called(email, excludeID)
	return args.Bool(0)
}

func validInput() entities.EmployeeInput {
	return entities.EmployeeInput{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		Phone:            "0532 123 45 67",
		Department:       "Tech",
		Position:         "Senior",
		DateOfEmployment: "2020-01-15",
		DateOfBirth:      "1990-06-30",
	}
}

func TestValidateForm_Valid(t *testing.T) {
	checker := new(mockChecker)
	checker.On("IsEmailUnique", "ada@example.com", 0).Return(true).Once()

	v := validation.ValidateForm(validInput(), checker, 0)

	assert.True(t, v.Valid())
	checker.AssertExpectations(t)
}

func TestValidateForm_AllBlank(t *testing.T) {
	checker := new(mockChecker)

	v := validation.ValidateForm(entities.EmployeeInput{}, checker, 0)

	require.Len(t, v, len(entities.Fields))
	for _, field := range entities.Fields {
		assert.Equal(t, []string{field + "Required"}, v[field], field)
	}
	checker.AssertNotCalled(t, "IsEmailUnique", mock.Anything, mock.Anything)
}

func TestValidateForm_WhitespaceIsBlank(t *testing.T) {
	in := validInput()
	in.LastName = "   "

	v := validation.ValidateForm(in, nil, 0)

	assert.Equal(t, validation.Violations{"lastName": {"lastNameRequired"}}, v)
}

func TestValidateForm_InvalidFormatsAreAllReported(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	in.Phone = "12345"
	in.DateOfBirth = "1850-01-01"
	in.DateOfEmployment = "yesterday"

	checker := new(mockChecker)
	checker.On("IsEmailUnique", "not-an-email", 3).Return(true)

	v := validation.ValidateForm(in, checker, 3)

	assert.Equal(t, validation.Violations{
		"email":            {"emailInvalid"},
		"phone":            {"phoneInvalid"},
		"dateOfBirth":      {"dateInvalid"},
		"dateOfEmployment": {"dateInvalid"},
	}, v)
	assert.Equal(t, []string{"emailInvalid", "phoneInvalid", "dateInvalid", "dateInvalid"}, v.Codes())
}

func TestValidateForm_DuplicateEmail(t *testing.T) {
	checker := new(mockChecker)
	checker.On("IsEmailUnique", "ada@example.com", 5).Return(false)

	v := validation.ValidateForm(validInput(), checker, 5)

	assert.Equal(t, validation.Violations{"email": {"emailNotUnique"}}, v)
	checker.AssertExpectations(t)
}

func TestValidateField(t *testing.T) {
	rules := []validation.Rule{validation.RuleRequired, validation.RuleEmail}

	assert.Equal(t, []string{"emailRequired"}, validation.ValidateField("", rules, "email", nil, 0))
	assert.Nil(t, validation.ValidateField("a@b.co", rules, "email", nil, 0))
	assert.Nil(t, validation.ValidateField("", []validation.Rule{validation.RuleEmail}, "email", nil, 0),
		"optional blank field is valid")
}

func TestIsPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5321234567", true},
		{"05321234567", true},
		{"905321234567", true},
		{"+905321234567", true},
		{"+90 (532) 123-45-67", true},
		{"0532 123 45 67", true},
		{"0123456789", false},
		{"+15321234567", false},
		{"53212345", false},
		{"053212345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsPhone(tt.in))
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, validation.IsEmail("a@b.co"))
	assert.False(t, validation.IsEmail("a@b"))
	assert.False(t, validation.IsEmail("a b@c.d"))
	assert.False(t, validation.IsEmail("a@@b.co"))
}

func TestIsDate(t *testing.T) {
	assert.True(t, validation.IsDate("1901-01-01"))
	assert.True(t, validation.IsDate("2021-03-04T10:00:00Z"))
	assert.False(t, validation.IsDate("1900-12-31"))
	assert.False(t, validation.IsDate("2021-13-01"))
	assert.False(t, validation.IsDate(strings.Repeat("9", 8)))
}
