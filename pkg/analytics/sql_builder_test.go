package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fromJoins = "FROM sales " +
	"JOIN product_sales ON sales.id = product_sales.sale_id " +
	"JOIN products ON product_sales.product_id = products.id " +
	"JOIN channels ON sales.channel_id = channels.id " +
	"JOIN stores ON sales.store_id = stores.id"

func TestSQLBuilder_BuildSQL(t *testing.T) {
	builder := NewSQLBuilder()
	catalog := NewDefaultCatalog()

	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31End := time.Date(2025, 1, 31, 23, 59, 59, 999999000, time.UTC)

	tests := []struct {
		name            string
		query           Query
		expectedSQL     string
		expectedArgs    []interface{}
		expectedColumns []string
	}{
		{
			name: "metrics only collapses to a single aggregate row",
			query: Query{
				Metrics: []string{"order_count"},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins,
			expectedColumns: []string{"order_count"},
		},
		{
			name: "metric with dimension groups by the dimension expression",
			query: Query{
				Metrics:    []string{"total_revenue"},
				Dimensions: []string{"channel_name"},
			},
			expectedSQL: "SELECT SUM(product_sales.base_price * product_sales.quantity) AS total_revenue, " +
				"channels.name AS channel_name " + fromJoins +
				" GROUP BY channels.name",
			expectedColumns: []string{"total_revenue", "channel_name"},
		},
		{
			name: "derived dimension groups by its expression",
			query: Query{
				Metrics:    []string{"order_count"},
				Dimensions: []string{"order_hour"},
			},
			expectedSQL: "SELECT COUNT(DISTINCT sales.id) AS order_count, " +
				"EXTRACT(hour FROM sales.created_at) AS order_hour " + fromJoins +
				" GROUP BY EXTRACT(hour FROM sales.created_at)",
			expectedColumns: []string{"order_count", "order_hour"},
		},
		{
			name: "dimensions only still groups",
			query: Query{
				Dimensions: []string{"product_category"},
			},
			expectedSQL:     "SELECT products.category AS product_category " + fromJoins + " GROUP BY products.category",
			expectedColumns: []string{"product_category"},
		},
		{
			name: "unknown metrics and dimensions are dropped silently",
			query: Query{
				Metrics:    []string{"total_revenue", "median_order_value"},
				Dimensions: []string{"channel_name", "moon_phase"},
			},
			expectedSQL: "SELECT SUM(product_sales.base_price * product_sales.quantity) AS total_revenue, " +
				"channels.name AS channel_name " + fromJoins +
				" GROUP BY channels.name",
			expectedColumns: []string{"total_revenue", "channel_name"},
		},
		{
			name: "eq filter on a plain column",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "channel_name", Operator: OperatorEq, Value: "iFood"}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins + " WHERE channels.name = $1",
			expectedArgs:    []interface{}{"iFood"},
			expectedColumns: []string{"order_count"},
		},
		{
			name: "in filter",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "store_id", Operator: OperatorIn, Value: []interface{}{float64(1), float64(2)}}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins + " WHERE stores.id IN ($1,$2)",
			expectedArgs:    []interface{}{float64(1), float64(2)},
			expectedColumns: []string{"order_count"},
		},
		{
			name: "notin filter",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "store_state", Operator: OperatorNotIn, Value: []interface{}{"SP", "RJ"}}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins + " WHERE stores.state NOT IN ($1,$2)",
			expectedArgs:    []interface{}{"SP", "RJ"},
			expectedColumns: []string{"order_count"},
		},
		{
			name: "between on a temporal field coerces raw date strings",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "order_time", Operator: OperatorBetween, Value: []interface{}{"2025-01-01", "2025-01-31"}}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins + " WHERE sales.created_at BETWEEN $1 AND $2",
			expectedArgs:    []interface{}{jan1, jan31End},
			expectedColumns: []string{"order_count"},
		},
		{
			name: "lt on a temporal field uses end of day",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "order_time", Operator: OperatorLt, Value: "2025-01-31"}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins + " WHERE sales.created_at < $1",
			expectedArgs:    []interface{}{jan31End},
			expectedColumns: []string{"order_count"},
		},
		{
			name: "gte on a temporal field uses start of day",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "order_time", Operator: OperatorGte, Value: "2025-01-01"}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins + " WHERE sales.created_at >= $1",
			expectedArgs:    []interface{}{jan1},
			expectedColumns: []string{"order_count"},
		},
		{
			name: "unknown filter field has zero effect",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "customer_mood", Operator: OperatorEq, Value: "happy"}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins,
			expectedColumns: []string{"order_count"},
		},
		{
			name: "between with wrong arity is dropped",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "order_time", Operator: OperatorBetween, Value: []interface{}{"2025-01-01"}}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins,
			expectedColumns: []string{"order_count"},
		},
		{
			name: "in with a scalar value is dropped",
			query: Query{
				Metrics: []string{"order_count"},
				Filters: []Filter{{Field: "store_id", Operator: OperatorIn, Value: float64(1)}},
			},
			expectedSQL:     "SELECT COUNT(DISTINCT sales.id) AS order_count " + fromJoins,
			expectedColumns: []string{"order_count"},
		},
		{
			name: "filters apply in request order",
			query: Query{
				Metrics: []string{"total_revenue"},
				Filters: []Filter{
					{Field: "store_state", Operator: OperatorEq, Value: "SP"},
					{Field: "product_category", Operator: OperatorNeq, Value: "beverages"},
				},
			},
			expectedSQL: "SELECT SUM(product_sales.base_price * product_sales.quantity) AS total_revenue " + fromJoins +
				" WHERE stores.state = $1 AND products.category <> $2",
			expectedArgs:    []interface{}{"SP", "beverages"},
			expectedColumns: []string{"total_revenue"},
		},
		{
			name: "january revenue per channel scenario",
			query: Query{
				Metrics:    []string{"total_revenue", "order_count"},
				Dimensions: []string{"channel_name"},
				Filters:    []Filter{{Field: "order_time", Operator: OperatorBetween, Value: []interface{}{"2025-01-01", "2025-01-31"}}},
			},
			expectedSQL: "SELECT SUM(product_sales.base_price * product_sales.quantity) AS total_revenue, " +
				"COUNT(DISTINCT sales.id) AS order_count, " +
				"channels.name AS channel_name " + fromJoins +
				" WHERE sales.created_at BETWEEN $1 AND $2" +
				" GROUP BY channels.name",
			expectedArgs:    []interface{}{jan1, jan31End},
			expectedColumns: []string{"total_revenue", "order_count", "channel_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := builder.BuildSQL(tt.query, catalog)
			require.NoError(t, err)
			assert.False(t, stmt.Empty())
			assert.Equal(t, tt.expectedSQL, stmt.SQL)
			assert.Equal(t, tt.expectedColumns, stmt.Columns)
			if tt.expectedArgs == nil {
				assert.Empty(t, stmt.Args)
			} else {
				assert.Equal(t, tt.expectedArgs, stmt.Args)
			}
		})
	}
}

func TestSQLBuilder_BuildSQL_EmptySelection(t *testing.T) {
	builder := NewSQLBuilder()
	catalog := NewDefaultCatalog()

	tests := []struct {
		name  string
		query Query
	}{
		{"nothing requested", Query{}},
		{"only unknown ids", Query{Metrics: []string{"nope"}, Dimensions: []string{"also_nope"}}},
		{
			"filters alone do not make a query",
			Query{Filters: []Filter{{Field: "store_state", Operator: OperatorEq, Value: "SP"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := builder.BuildSQL(tt.query, catalog)
			require.NoError(t, err)
			assert.True(t, stmt.Empty())
			assert.Empty(t, stmt.SQL)
			assert.Empty(t, stmt.Args)
		})
	}
}

func TestSQLBuilder_BuildSQL_NormalizedValuesNotReCoerced(t *testing.T) {
	// Values already normalized by Query.Normalize arrive as time.Time and
	// must pass through untouched.
	builder := NewSQLBuilder()
	catalog := NewDefaultCatalog()

	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	q := Query{
		Metrics: []string{"order_count"},
		Filters: []Filter{{Field: "order_time", Operator: OperatorLte, Value: ts}},
	}

	stmt, err := builder.BuildSQL(q, catalog)
	require.NoError(t, err)
	require.Len(t, stmt.Args, 1)
	assert.Equal(t, ts, stmt.Args[0])
}
