package analytics

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// Filter operators supported by the query language.
const (
	OperatorEq      = "eq"
	OperatorNeq     = "neq"
	OperatorGt      = "gt"
	OperatorLt      = "lt"
	OperatorGte     = "gte"
	OperatorLte     = "lte"
	OperatorIn      = "in"
	OperatorNotIn   = "notin"
	OperatorBetween = "between"
)

// Time grains accepted on a query. The grain is part of the request shape
// for forward compatibility but is not consumed by the SQL builder.
const (
	TimeGrainDay   = "day"
	TimeGrainWeek  = "week"
	TimeGrainMonth = "month"
)

// Filter describes a single predicate to apply to the query.
//
// Value is loosely typed on purpose: it may be a scalar, a list (for in/notin)
// or a 2-element list (for between). Values for temporal fields are normalized
// into time.Time by Query.Normalize before they reach the SQL builder.
type Filter struct {
	Field    string      `json:"field" valid:"required"`
	Operator string      `json:"operator" valid:"required,in(eq|neq|gt|lt|gte|lte|in|notin|between)"`
	Value    interface{} `json:"value" valid:"-"`
}

// Validate checks the filter shape. Whether the field resolves against the
// catalog is deliberately not checked here: unknown fields are dropped by the
// builder, not rejected.
func (f *Filter) Validate() error {
	if _, err := govalidator.ValidateStruct(f); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	return nil
}

// Query is the declarative analytics request: which metrics to compute,
// which dimensions to group by, and which filters to apply. Metrics and
// dimensions keep their request order; filters are applied in request order
// and duplicates are allowed.
type Query struct {
	Metrics    []string `json:"metrics" valid:"-"`
	Dimensions []string `json:"dimensions" valid:"-"`
	Filters    []Filter `json:"filters" valid:"-"`
	TimeGrain  string   `json:"time_grain,omitempty" valid:"in(day|week|month),optional"`
}

// Validate checks the request shape: operator and time grain enums.
// Metric, dimension and filter-field ids are not validated against the
// catalog; unresolvable ids are silently omitted by the builder.
func (q *Query) Validate() error {
	if _, err := govalidator.ValidateStruct(q); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	for i := range q.Filters {
		if err := q.Filters[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Normalize eagerly converts date-like filter values into time.Time so the
// builder can compare them against timestamp columns without engine-side
// type errors.
//
// A field is treated as temporal by name: it contains "time" or "date",
// case-insensitive. The end-of-day rule follows the comparison direction:
// the upper bound of between and single-value lt/lte expand a calendar date
// to its last instant, everything else to its first. This is what makes
// ["2025-01-01", "2025-01-31"] include the whole of January 31.
func (q *Query) Normalize() {
	for i := range q.Filters {
		f := &q.Filters[i]
		if !isTemporalFieldName(f.Field) || f.Value == nil {
			continue
		}

		switch f.Operator {
		case OperatorBetween:
			if pair, ok := asPair(f.Value); ok {
				f.Value = []interface{}{
					NormalizeTemporalValue(pair[0], false),
					NormalizeTemporalValue(pair[1], true),
				}
			}
		case OperatorIn, OperatorNotIn:
			if seq, ok := asSequence(f.Value); ok {
				normalized := make([]interface{}, len(seq))
				for j, v := range seq {
					normalized[j] = NormalizeTemporalValue(v, false)
				}
				f.Value = normalized
			}
		case OperatorLt, OperatorLte:
			f.Value = NormalizeTemporalValue(f.Value, true)
		default:
			f.Value = NormalizeTemporalValue(f.Value, false)
		}
	}
}

// Response is the payload returned for an analytics query: the row records
// plus metadata echoing the query and its execution time.
type Response struct {
	Data     []map[string]interface{} `json:"data"`
	Metadata ResponseMetadata         `json:"metadata"`
}

// ResponseMetadata describes the executed query for traceability.
type ResponseMetadata struct {
	Query           Query   `json:"query"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
}

// isTemporalFieldName reports whether a filter field name looks date-like.
// This is a pure name heuristic; the builder separately consults the
// catalog's type tags when coercing values.
func isTemporalFieldName(field string) bool {
	lower := strings.ToLower(field)
	return strings.Contains(lower, "time") || strings.Contains(lower, "date")
}

// asSequence converts a filter value into a generic slice when possible.
func asSequence(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		seq := make([]interface{}, len(v))
		for i, s := range v {
			seq[i] = s
		}
		return seq, true
	default:
		return nil, false
	}
}

// asPair converts a filter value into a 2-element slice when possible.
func asPair(value interface{}) ([]interface{}, bool) {
	seq, ok := asSequence(value)
	if !ok || len(seq) != 2 {
		return nil, false
	}
	return seq, true
}
