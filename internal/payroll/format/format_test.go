package format

import (
	"testing"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBRL(t *testing.T) {
	cases := map[string]string{
		"8418.75":    "R$ 8.418,75",
		"0":          "R$ 0,00",
		"1200":       "R$ 1.200,00",
		"1234567.8":  "R$ 1.234.567,80",
		"1100.005":   "R$ 1.100,01",
		"7447.5":     "R$ 7.447,50",
		"-35.1":      "-R$ 35,10",
		"0.99999999": "R$ 1,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, BRL(decimal.RequireFromString(in)), in)
	}
}

func TestDatesAndCompetencies(t *testing.T) {
	assert.Equal(t, "28/05/2025", Date(time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", Date(time.Time{}))

	c := types.Competency{Year: 2025, Month: time.March}
	assert.Equal(t, "03/2025", Competency(c))
	assert.Equal(t, "março de 2025", CompetencyLong(c))
}

func TestListAndInteger(t *testing.T) {
	assert.Equal(t, "", List(nil))
	assert.Equal(t, "a", List([]string{"a"}))
	assert.Equal(t, "a e b", List([]string{"a", "b"}))
	assert.Equal(t, "a, b e c", List([]string{"a", "b", "c"}))
	assert.Equal(t, "15", Integer(15))
	assert.Equal(t, "1.500", Integer(1500))
}
