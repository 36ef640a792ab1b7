package analytics

// The semantic catalog binds the public query vocabulary to SQL over the
// fixed five-table restaurant sales schema:
//
//	sales          one row per order
//	product_sales  one row per line item, FK to sales and products
//	products, channels, stores
//
// The catalog is built once at process start and is immutable afterwards,
// so concurrent requests share it without synchronization.

// ExpressionKind tags how a catalog entry produces SQL.
type ExpressionKind string

const (
	// KindAggregate is an aggregate function over the joined row set.
	KindAggregate ExpressionKind = "aggregate"
	// KindColumn is a direct column reference.
	KindColumn ExpressionKind = "column"
	// KindDerived is a non-aggregate expression computed from a column.
	KindDerived ExpressionKind = "derived"
)

// MetricDefinition is an aggregate computation selectable by id.
type MetricDefinition struct {
	Kind       ExpressionKind
	Expression string
}

// DimensionDefinition is a grouping key selectable by id. Its expression is
// used both in the projection and in GROUP BY.
type DimensionDefinition struct {
	Kind       ExpressionKind
	Expression string
}

// FilterFieldDefinition is a raw, non-aggregated expression usable in WHERE.
// Temporal is decided once, when the catalog is built, so the builder never
// has to sniff column types at filter-apply time.
type FilterFieldDefinition struct {
	Kind       ExpressionKind
	Expression string
	Temporal   bool
}

// PhysicalSchema lists the columns physically present in each table. The
// catalog consults it at build time; nothing re-checks it per request.
type PhysicalSchema struct {
	Tables map[string][]string
}

// HasColumn reports whether a table carries the named column.
func (s PhysicalSchema) HasColumn(table, column string) bool {
	for _, c := range s.Tables[table] {
		if c == column {
			return true
		}
	}
	return false
}

// DefaultSchema mirrors the tables created by the database init scripts.
var DefaultSchema = PhysicalSchema{
	Tables: map[string][]string{
		"stores":        {"id", "name", "city", "state", "district", "address_street", "address_number", "zipcode", "latitude", "longitude", "is_active"},
		"channels":      {"id", "name"},
		"products":      {"id", "name", "category"},
		"sales":         {"id", "store_id", "channel_id", "customer_id", "created_at", "value_paid", "total_amount", "sale_status_desc"},
		"product_sales": {"id", "sale_id", "product_id", "quantity", "base_price", "total_price"},
	},
}

// Catalog is the closed id -> expression vocabulary of the query language.
type Catalog struct {
	metrics      map[string]MetricDefinition
	dimensions   map[string]DimensionDefinition
	filterFields map[string]FilterFieldDefinition
}

// NewCatalog builds the catalog against a physical schema. The region
// dimension resolves to the most granular location column the stores table
// actually has: district, then city, then store name. That choice is made
// here, once, not per request.
func NewCatalog(schema PhysicalSchema) *Catalog {
	metrics := map[string]MetricDefinition{
		"total_revenue": {
			Kind:       KindAggregate,
			Expression: "SUM(product_sales.base_price * product_sales.quantity)",
		},
		// DISTINCT is load-bearing: the join against line items multiplies
		// sales rows, so a plain COUNT would overcount orders.
		"order_count": {
			Kind:       KindAggregate,
			Expression: "COUNT(DISTINCT sales.id)",
		},
		// NULLIF guards the zero-order group: the division yields NULL
		// instead of raising.
		"avg_order_value": {
			Kind:       KindAggregate,
			Expression: "SUM(product_sales.base_price * product_sales.quantity) / NULLIF(COUNT(DISTINCT sales.id), 0)",
		},
	}

	region := "stores.name"
	if schema.HasColumn("stores", "district") {
		region = "stores.district"
	} else if schema.HasColumn("stores", "city") {
		region = "stores.city"
	}

	dimensions := map[string]DimensionDefinition{
		"product_name":      {Kind: KindColumn, Expression: "products.name"},
		"product_category":  {Kind: KindColumn, Expression: "products.category"},
		"channel_name":      {Kind: KindColumn, Expression: "channels.name"},
		"store_name":        {Kind: KindColumn, Expression: "stores.name"},
		"order_day_of_week": {Kind: KindDerived, Expression: "TO_CHAR(sales.created_at, 'Day')"},
		"order_hour":        {Kind: KindDerived, Expression: "EXTRACT(hour FROM sales.created_at)"},
		"region":            {Kind: KindColumn, Expression: region},
	}

	// Every dimension is filterable, plus the raw identifier and timestamp
	// columns that never appear in a projection.
	filterFields := make(map[string]FilterFieldDefinition, len(dimensions)+7)
	for id, dim := range dimensions {
		filterFields[id] = FilterFieldDefinition{Kind: dim.Kind, Expression: dim.Expression}
	}
	filterFields["order_time"] = FilterFieldDefinition{Kind: KindColumn, Expression: "sales.created_at", Temporal: true}
	filterFields["order_id"] = FilterFieldDefinition{Kind: KindColumn, Expression: "sales.id"}
	filterFields["store_id"] = FilterFieldDefinition{Kind: KindColumn, Expression: "stores.id"}
	filterFields["store_state"] = FilterFieldDefinition{Kind: KindColumn, Expression: "stores.state"}
	filterFields["store_city"] = FilterFieldDefinition{Kind: KindColumn, Expression: "stores.city"}
	filterFields["channel_id"] = FilterFieldDefinition{Kind: KindColumn, Expression: "channels.id"}
	filterFields["product_id"] = FilterFieldDefinition{Kind: KindColumn, Expression: "products.id"}

	return &Catalog{
		metrics:      metrics,
		dimensions:   dimensions,
		filterFields: filterFields,
	}
}

// NewDefaultCatalog builds the catalog against DefaultSchema.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(DefaultSchema)
}

// ResolveMetric looks up a metric id. Lookups are pure; a miss means the
// caller must omit the metric, not fail.
func (c *Catalog) ResolveMetric(id string) (MetricDefinition, bool) {
	def, ok := c.metrics[id]
	return def, ok
}

// ResolveDimension looks up a dimension id.
func (c *Catalog) ResolveDimension(id string) (DimensionDefinition, bool) {
	def, ok := c.dimensions[id]
	return def, ok
}

// ResolveFilterField looks up a filterable field id. A miss means the
// filter is dropped entirely.
func (c *Catalog) ResolveFilterField(id string) (FilterFieldDefinition, bool) {
	def, ok := c.filterFields[id]
	return def, ok
}
