package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/shopspring/decimal"
)

func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	// Try yyyy-mm-dd format first
	t, err := time.Parse(time.DateOnly, dateStr)
	if err == nil {
		return t, nil
	}
	// Fallback to dd/mm/yyyy as exported by Brazilian systems
	t, err = time.Parse("02/01/2006", dateStr)
	if err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", dateStr)
}

// ParseCompetency accepts "2025-05", "2025/05" and "05/2025".
func ParseCompetency(valStr string) (types.Competency, error) {
	valStr = strings.TrimSpace(valStr)
	for _, layout := range []string{"2006-01", "2006/01", "01/2006", "1/2006"} {
		t, err := time.Parse(layout, valStr)
		if err == nil {
			return types.CompetencyOf(t), nil
		}
	}
	return types.Competency{}, fmt.Errorf("unparsable competency %q", valStr)
}

// Dots between groups of three digits with no decimal comma ("1.200").
var reGroupedThousands = regexp.MustCompile(`^[1-9]\d{0,2}(\.\d{3})+$`)

// ParseAmount reads a currency amount either in plain notation ("8418.75") or
// in Brazilian notation ("8.418,75", "R$ 8.418,75", "1.200").
func ParseAmount(valStr string) (decimal.Decimal, error) {
	cleanStr := strings.TrimSpace(valStr)
	cleanStr = strings.TrimPrefix(cleanStr, "R$")
	cleanStr = strings.TrimSpace(cleanStr)
	if cleanStr == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if strings.Contains(cleanStr, ",") {
		// Remove thousands separator (.) and replace decimal separator (,) with (.)
		cleanStr = strings.ReplaceAll(cleanStr, ".", "")
		cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
	} else if reGroupedThousands.MatchString(cleanStr) {
		cleanStr = strings.ReplaceAll(cleanStr, ".", "")
	}
	val, err := decimal.NewFromString(cleanStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("non-numeric amount %q", valStr)
	}
	return val, nil
}

func ParseInt(valStr string) (int, bool) {
	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		return 0, false
	}
	return val, true
}
