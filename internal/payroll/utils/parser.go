package utils

import (
	"slices"

	"github.com/go-gota/gota/dataframe"
)

func GetStr(col string, rowIdx int, df *dataframe.DataFrame) string {

	if df == nil {
		return ""
	}

	if slices.Contains(df.Names(), col) {
		el := df.Col(col).Elem(rowIdx)
		if el.IsNA() {
			return ""
		}
		return el.String()
	}
	return ""
}

// MissingColumns returns the required columns absent from df, in order.
func MissingColumns(df *dataframe.DataFrame, required []string) []string {
	names := df.Names()
	missing := []string{}
	for _, col := range required {
		if !slices.Contains(names, col) {
			missing = append(missing, col)
		}
	}
	return missing
}
