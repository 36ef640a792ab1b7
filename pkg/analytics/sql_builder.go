package analytics

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Statement is a compiled analytics query ready for execution.
type Statement struct {
	SQL     string
	Args    []interface{}
	Columns []string // projection labels, in resolution order
}

// Empty reports whether the query resolved to nothing selectable. An empty
// statement must not be sent to the database; callers return an empty
// result set instead.
func (s Statement) Empty() bool {
	return len(s.Columns) == 0
}

// SQLBuilder compiles a Query into a Postgres aggregation statement using
// the semantic catalog. It is stateless and safe for concurrent use.
type SQLBuilder struct {
	placeholder squirrel.PlaceholderFormat
}

// NewSQLBuilder creates a SQL builder with PostgreSQL placeholder format.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{
		placeholder: squirrel.Dollar,
	}
}

// The join graph is fixed: every query joins all five tables, whether or
// not it references them. Join pruning is a known possible optimization
// that is deliberately not done; the fixed graph keeps metric semantics
// identical across every combination of dimensions.
var joinClauses = []string{
	"product_sales ON sales.id = product_sales.sale_id",
	"products ON product_sales.product_id = products.id",
	"channels ON sales.channel_id = channels.id",
	"stores ON sales.store_id = stores.id",
}

// BuildSQL resolves the query through the catalog and compiles it.
//
// Unresolvable metric and dimension ids are dropped without error; if
// nothing resolves, the returned statement is empty and carries no SQL.
// Filters on unknown fields, between filters without exactly two values
// and in/notin filters without a sequence are skipped silently: a partial
// or misspelled filter must not break a dashboard, whereas storage faults
// always surface to the caller.
func (sb *SQLBuilder) BuildSQL(query Query, catalog *Catalog) (Statement, error) {
	var columns []string
	var selected []string
	var groupBy []string

	for _, id := range query.Metrics {
		def, ok := catalog.ResolveMetric(id)
		if !ok {
			continue
		}
		columns = append(columns, fmt.Sprintf("%s AS %s", def.Expression, id))
		selected = append(selected, id)
	}

	for _, id := range query.Dimensions {
		def, ok := catalog.ResolveDimension(id)
		if !ok {
			continue
		}
		columns = append(columns, fmt.Sprintf("%s AS %s", def.Expression, id))
		selected = append(selected, id)
		groupBy = append(groupBy, def.Expression)
	}

	if len(selected) == 0 {
		return Statement{}, nil
	}

	builder := squirrel.Select(columns...).
		PlaceholderFormat(sb.placeholder).
		From("sales")
	for _, join := range joinClauses {
		builder = builder.Join(join)
	}

	for _, filter := range query.Filters {
		def, ok := catalog.ResolveFilterField(filter.Field)
		if !ok {
			continue
		}
		condition, ok := sb.buildFilterCondition(def, filter)
		if !ok {
			continue
		}
		builder = builder.Where(condition)
	}

	if len(groupBy) > 0 {
		builder = builder.GroupBy(groupBy...)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("failed to build SQL: %w", err)
	}

	return Statement{SQL: sql, Args: args, Columns: selected}, nil
}

// buildFilterCondition translates one filter into a WHERE condition. The
// second return value is false when the filter shape is malformed and the
// filter must be dropped.
//
// Temporal fields coerce their values defensively even though Query.Normalize
// has usually done it already: the builder is also called with queries built
// in code that never went through request decoding.
func (sb *SQLBuilder) buildFilterCondition(def FilterFieldDefinition, filter Filter) (squirrel.Sqlizer, bool) {
	coerce := func(value interface{}, endOfDay bool) interface{} {
		if def.Temporal {
			return NormalizeTemporalValue(value, endOfDay)
		}
		return value
	}

	switch filter.Operator {
	case OperatorEq:
		return squirrel.Eq{def.Expression: coerce(filter.Value, false)}, true
	case OperatorNeq:
		return squirrel.NotEq{def.Expression: coerce(filter.Value, false)}, true
	case OperatorGt:
		return squirrel.Gt{def.Expression: coerce(filter.Value, false)}, true
	case OperatorGte:
		return squirrel.GtOrEq{def.Expression: coerce(filter.Value, false)}, true
	case OperatorLt:
		// End-of-day so that "before Jan 31" means through the whole of
		// Jan 31 for calendar-day inputs.
		return squirrel.Lt{def.Expression: coerce(filter.Value, true)}, true
	case OperatorLte:
		return squirrel.LtOrEq{def.Expression: coerce(filter.Value, true)}, true
	case OperatorIn, OperatorNotIn:
		seq, ok := asSequence(filter.Value)
		if !ok {
			return nil, false
		}
		values := make([]interface{}, len(seq))
		for i, v := range seq {
			values[i] = coerce(v, false)
		}
		if filter.Operator == OperatorIn {
			return squirrel.Eq{def.Expression: values}, true
		}
		return squirrel.NotEq{def.Expression: values}, true
	case OperatorBetween:
		pair, ok := asPair(filter.Value)
		if !ok {
			return nil, false
		}
		lower := coerce(pair[0], false)
		upper := coerce(pair[1], true)
		return squirrel.Expr(fmt.Sprintf("%s BETWEEN ? AND ?", def.Expression), lower, upper), true
	default:
		return nil, false
	}
}
