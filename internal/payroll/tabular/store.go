package tabular

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/farxc/folha-assistente/internal/payroll/converter"
	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/farxc/folha-assistente/internal/payroll/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const colRow = "row"

// Store is the immutable in-memory payroll dataset. Safe for concurrent reads.
type Store struct {
	records      []types.PayrollRecord
	index        dataframe.DataFrame
	employees    map[string]string
	competencies []types.Competency
}

// Predicate is a conjunction; a nil/empty field does not constrain.
type Predicate struct {
	EmployeeIDs []string
	Period      *types.Period
}

func LoadFile(path string, enc files.Encoding) (*Store, error) {
	df, err := files.OpenFileAndDecode(path, enc)
	if err != nil {
		return nil, err
	}
	return FromDataFrame(df)
}

func Load(r io.Reader, enc files.Encoding) (*Store, error) {
	df, err := files.Decode(r, enc)
	if err != nil {
		return nil, err
	}
	return FromDataFrame(df)
}

// FromDataFrame validates df and builds the store. Any malformed row fails
// the whole load.
func FromDataFrame(df dataframe.DataFrame) (*Store, error) {
	if missing := utils.MissingColumns(&df, types.RequiredColumns); len(missing) > 0 {
		return nil, &SchemaError{Column: strings.Join(missing, ","), Reason: "missing required column"}
	}

	records := make([]types.PayrollRecord, 0, df.Nrow())
	seen := make(map[string]int, df.Nrow())
	employees := make(map[string]string)
	compSet := make(map[types.Competency]struct{})

	for i := 0; i < df.Nrow(); i++ {
		rec, err := converter.DfRowToRecord(df, i)
		if err != nil {
			var fe *converter.FieldError
			if errors.As(err, &fe) {
				return nil, &SchemaError{Row: i + 1, Column: fe.Column, Value: fe.Value, Reason: fe.Reason}
			}
			return nil, &SchemaError{Row: i + 1, Reason: err.Error()}
		}
		if prev, dup := seen[rec.Key()]; dup {
			return nil, &SchemaError{
				Row:    i + 1,
				Column: types.ColCompetency,
				Value:  rec.Competency.String(),
				Reason: fmt.Sprintf("duplicate record for employee %s (first at row %d)", rec.EmployeeID, prev),
			}
		}
		if name, ok := employees[rec.EmployeeID]; ok && name != rec.Name {
			return nil, &SchemaError{
				Row:    i + 1,
				Column: types.ColName,
				Value:  rec.Name,
				Reason: fmt.Sprintf("employee %s already named %q", rec.EmployeeID, name),
			}
		}
		seen[rec.Key()] = i + 1
		employees[rec.EmployeeID] = rec.Name
		compSet[rec.Competency] = struct{}{}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return lessRecord(records[i], records[j])
	})

	ids := make([]string, len(records))
	comps := make([]string, len(records))
	rows := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.EmployeeID
		comps[i] = r.Competency.String()
		rows[i] = i
	}
	index := dataframe.New(
		series.New(ids, series.String, types.ColEmployeeID),
		series.New(comps, series.String, types.ColCompetency),
		series.New(rows, series.Int, colRow),
	)

	competencies := make([]types.Competency, 0, len(compSet))
	for c := range compSet {
		competencies = append(competencies, c)
	}
	sort.Slice(competencies, func(i, j int) bool { return competencies[i].Before(competencies[j]) })

	return &Store{
		records:      records,
		index:        index,
		employees:    employees,
		competencies: competencies,
	}, nil
}

func lessRecord(a, b types.PayrollRecord) bool {
	if a.Competency != b.Competency {
		return a.Competency.Before(b.Competency)
	}
	return a.EmployeeID < b.EmployeeID
}

// Filter returns the records satisfying p, ordered by competency then
// employee_id. The returned slice is a copy.
func (s *Store) Filter(p Predicate) ([]types.PayrollRecord, error) {
	if len(s.records) == 0 {
		return []types.PayrollRecord{}, nil
	}
	df := s.index

	if len(p.EmployeeIDs) > 0 {
		df = df.Filter(dataframe.F{Colname: types.ColEmployeeID, Comparator: series.In, Comparando: p.EmployeeIDs})
	}
	if p.Period != nil {
		wanted := []string{}
		for _, c := range s.competencies {
			if p.Period.Contains(c) {
				wanted = append(wanted, c.String())
			}
		}
		if len(wanted) == 0 {
			return []types.PayrollRecord{}, nil
		}
		df = df.Filter(dataframe.F{Colname: types.ColCompetency, Comparator: series.In, Comparando: wanted})
	}
	if df.Err != nil {
		return nil, fmt.Errorf("filter payroll index: %w", df.Err)
	}

	out := make([]types.PayrollRecord, 0, df.Nrow())
	if df.Nrow() == 0 {
		return out, nil
	}
	rows, err := df.Col(colRow).Int()
	if err != nil {
		return nil, fmt.Errorf("read row index: %w", err)
	}
	for _, r := range rows {
		out = append(out, s.records[r])
	}
	sort.SliceStable(out, func(i, j int) bool { return lessRecord(out[i], out[j]) })
	return out, nil
}

// Records returns every record in canonical order.
func (s *Store) Records() []types.PayrollRecord {
	return append([]types.PayrollRecord(nil), s.records...)
}

func (s *Store) Len() int {
	return len(s.records)
}

// Employees maps employee_id to display name.
func (s *Store) Employees() map[string]string {
	out := make(map[string]string, len(s.employees))
	for id, name := range s.employees {
		out[id] = name
	}
	return out
}

// Competencies lists the distinct competencies present, ascending.
func (s *Store) Competencies() []types.Competency {
	return append([]types.Competency(nil), s.competencies...)
}
