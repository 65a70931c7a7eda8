package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"employeedir/internal/directory/i18n"
)

func TestFormatDate(t *testing.T) {
	c := newCatalog(t)

	assert.Equal(t, "", c.FormatDate("en", ""))
	assert.Equal(t, "15/03/2021", c.FormatDate("en", "2021-03-15"))
	assert.Equal(t, "15.03.2021", c.FormatDate("tr", "2021-03-15"))
	assert.Equal(t, "15/03/2021", c.FormatDate("de", "2021-03-15T08:00:00Z"))
	assert.Equal(t, i18n.InvalidDate, c.FormatDate("en", "not a date"))
}

func TestFormatDateForInput(t *testing.T) {
	assert.Equal(t, "", i18n.FormatDateForInput(""))
	assert.Equal(t, "", i18n.FormatDateForInput("garbage"))
	assert.Equal(t, "2021-03-15", i18n.FormatDateForInput("2021-03-15"))
	assert.Equal(t, "2021-03-15", i18n.FormatDateForInput("2021-03-15T10:20:30Z"))
}

func TestDepartmentAndPosition(t *testing.T) {
	c := newCatalog(t)

	assert.Equal(t, "Teknoloji", c.Department("tr", "Tech"))
	assert.Equal(t, "Analytics", c.Department("en", "analytics"))
	assert.Equal(t, "Marketing", c.Department("tr", "Marketing"))
	assert.Equal(t, "", c.Department("tr", ""))
	assert.Equal(t, "Senior", c.Position("tr", "Senior"))
	assert.Equal(t, []string{"Junior", "Medior", "Senior"}, i18n.Positions)
}
