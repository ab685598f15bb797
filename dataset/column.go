package dataset

import "math"

// Kind identifies the value type of a column. It is decided once when the
// column is constructed and carried as part of the schema, so later
// processing never re-infers types from raw values.
type Kind int

const (
	// Numeric marks a column holding float64 values. Missing cells are NaN.
	Numeric Kind = iota
	// Categorical marks a column holding string labels. Missing cells are
	// tracked by an explicit mask.
	Categorical
)

// String returns the string representation of the column kind.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a single named column of a Frame: a tagged union of numeric
// values or categorical labels, with any cell possibly missing.
type Column struct {
	name string
	kind Kind

	nums []float64 // Numeric storage, NaN marks a missing cell
	cats []string  // Categorical storage
	miss []bool    // Categorical missing mask, nil means fully observed
}

// NewNumericColumn creates a numeric column. NaN values mark missing cells.
func NewNumericColumn(name string, values []float64) Column {
	nums := make([]float64, len(values))
	copy(nums, values)
	return Column{name: name, kind: Numeric, nums: nums}
}

// NewCategoricalColumn creates a categorical column. The missing mask may be
// nil when every cell is observed; otherwise it must have the same length as
// values and true entries mark missing cells.
func NewCategoricalColumn(name string, values []string, missing []bool) Column {
	cats := make([]string, len(values))
	copy(cats, values)
	var miss []bool
	if missing != nil {
		miss = make([]bool, len(missing))
		copy(miss, missing)
	}
	return Column{name: name, kind: Categorical, cats: cats, miss: miss}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.cats)
}

// IsMissing reports whether the cell at row i is missing.
func (c *Column) IsMissing(i int) bool {
	if c.kind == Numeric {
		return math.IsNaN(c.nums[i])
	}
	return c.miss != nil && c.miss[i]
}

// Float returns the numeric value at row i. Only valid for numeric columns.
func (c *Column) Float(i int) float64 { return c.nums[i] }

// Label returns the categorical label at row i. Only valid for categorical
// columns; the value is unspecified when the cell is missing.
func (c *Column) Label(i int) string { return c.cats[i] }

// SetFloat overwrites the numeric value at row i.
func (c *Column) SetFloat(i int, v float64) { c.nums[i] = v }

// SetLabel overwrites the categorical label at row i and clears its missing
// flag.
func (c *Column) SetLabel(i int, v string) {
	c.cats[i] = v
	if c.miss != nil {
		c.miss[i] = false
	}
}

// ObservedCount returns the number of non-missing cells.
func (c *Column) ObservedCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			n++
		}
	}
	return n
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	return c.Len() - c.ObservedCount()
}

// clone returns a deep copy of the column.
func (c *Column) clone() Column {
	out := Column{name: c.name, kind: c.kind}
	if c.nums != nil {
		out.nums = make([]float64, len(c.nums))
		copy(out.nums, c.nums)
	}
	if c.cats != nil {
		out.cats = make([]string, len(c.cats))
		copy(out.cats, c.cats)
	}
	if c.miss != nil {
		out.miss = make([]bool, len(c.miss))
		copy(out.miss, c.miss)
	}
	return out
}

// selectRows returns a copy of the column restricted to the given rows.
func (c *Column) selectRows(rows []int) Column {
	out := Column{name: c.name, kind: c.kind}
	if c.kind == Numeric {
		out.nums = make([]float64, len(rows))
		for i, r := range rows {
			out.nums[i] = c.nums[r]
		}
		return out
	}
	out.cats = make([]string, len(rows))
	for i, r := range rows {
		out.cats[i] = c.cats[r]
	}
	if c.miss != nil {
		out.miss = make([]bool, len(rows))
		for i, r := range rows {
			out.miss[i] = c.miss[r]
		}
	}
	return out
}
