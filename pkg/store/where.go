// Package store provides composable query options for GORM queries.
// Stores accept a *Options value so handlers can express pagination,
// equality filters, and raw query fragments without leaking gorm types
// upward.
package store

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultLimit caps unbounded list queries.
const defaultLimit = 100

// Options collects the query conditions applied by Where.
type Options struct {
	// Offset is the row offset, -1 means unset.
	Offset int

	// Limit is the row cap, -1 means unset (defaultLimit applies).
	Limit int

	// Filters are ANDed equality conditions (column -> value).
	Filters map[interface{}]interface{}

	// Clauses are raw gorm clause expressions (ordering etc).
	Clauses []clause.Expression

	// Queries are raw query fragments with args, ANDed together.
	Queries []Query
}

// Query is one raw condition fragment.
type Query struct {
	Query interface{}
	Args  []interface{}
}

// Option mutates an Options value.
type Option func(*Options)

// tenantRegistry supports an optional ambient tenant filter.
var (
	tenantMu     sync.RWMutex
	tenantColumn string
	tenantValue  func(ctx context.Context) string
)

// RegisterTenant installs a global tenant column and value extractor
// applied by T.
func RegisterTenant(column string, value func(ctx context.Context) string) {
	tenantMu.Lock()
	defer tenantMu.Unlock()
	tenantColumn = column
	tenantValue = value
}

// WithOffset sets the row offset.
func WithOffset(offset int) Option {
	return func(o *Options) {
		if offset < 0 {
			offset = 0
		}
		o.Offset = offset
	}
}

// WithLimit sets the row cap.
func WithLimit(limit int) Option {
	return func(o *Options) {
		if limit <= 0 {
			return
		}
		o.Limit = limit
	}
}

// WithPage converts 1-based page/pageSize into offset/limit.
func WithPage(page, pageSize int) Option {
	return func(o *Options) {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = defaultLimit
		}
		o.Offset = (page - 1) * pageSize
		o.Limit = pageSize
	}
}

// WithFilter merges equality filter conditions.
func WithFilter(filter map[interface{}]interface{}) Option {
	return func(o *Options) {
		for k, v := range filter {
			o.Filters[k] = v
		}
	}
}

// WithClauses appends gorm clause expressions.
func WithClauses(conds ...clause.Expression) Option {
	return func(o *Options) {
		o.Clauses = append(o.Clauses, conds...)
	}
}

// WithQuery appends a raw query fragment.
func WithQuery(query interface{}, args ...interface{}) Option {
	return func(o *Options) {
		o.Queries = append(o.Queries, Query{Query: query, Args: args})
	}
}

// NewWhere builds query options.
func NewWhere(opts ...Option) *Options {
	o := &Options{
		Offset:  -1,
		Limit:   -1,
		Filters: make(map[interface{}]interface{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// F is shorthand for a single equality filter, given as alternating
// key/value pairs.
func F(kvs ...interface{}) *Options {
	o := NewWhere()
	return o.F(kvs...)
}

// F merges alternating key/value pairs into the filter set.
func (o *Options) F(kvs ...interface{}) *Options {
	for i := 0; i+1 < len(kvs); i += 2 {
		o.Filters[kvs[i]] = kvs[i+1]
	}
	return o
}

// Q appends a raw query fragment.
func (o *Options) Q(query interface{}, args ...interface{}) *Options {
	o.Queries = append(o.Queries, Query{Query: query, Args: args})
	return o
}

// O sets the offset.
func (o *Options) O(offset int) *Options {
	WithOffset(offset)(o)
	return o
}

// L sets the limit.
func (o *Options) L(limit int) *Options {
	WithLimit(limit)(o)
	return o
}

// P sets 1-based pagination.
func (o *Options) P(page, pageSize int) *Options {
	WithPage(page, pageSize)(o)
	return o
}

// T applies the registered tenant filter from the context, if any.
func (o *Options) T(ctx context.Context) *Options {
	tenantMu.RLock()
	column, value := tenantColumn, tenantValue
	tenantMu.RUnlock()
	if column != "" && value != nil {
		if v := value(ctx); v != "" {
			o.Filters[column] = v
		}
	}
	return o
}

// Where applies all collected conditions to the db handle.
func (o *Options) Where(db *gorm.DB) *gorm.DB {
	return o.Paginate(o.Conditions(db))
}

// Conditions applies the filter conditions without pagination. List
// queries count on this handle before paginating, so the total is not
// truncated by the page window.
func (o *Options) Conditions(db *gorm.DB) *gorm.DB {
	for _, q := range o.Queries {
		db = db.Where(q.Query, q.Args...)
	}
	if len(o.Filters) > 0 {
		filters := make(map[string]interface{}, len(o.Filters))
		for k, v := range o.Filters {
			if col, ok := k.(string); ok {
				filters[col] = v
			}
		}
		db = db.Where(filters)
	}
	if len(o.Clauses) > 0 {
		db = db.Clauses(o.Clauses...)
	}
	return db
}

// Paginate applies the offset and limit.
func (o *Options) Paginate(db *gorm.DB) *gorm.DB {
	if o.Offset > 0 {
		db = db.Offset(o.Offset)
	}
	switch {
	case o.Limit > 0:
		db = db.Limit(o.Limit)
	default:
		db = db.Limit(defaultLimit)
	}
	return db
}
