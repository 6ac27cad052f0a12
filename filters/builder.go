// Package filters turns optional query parameters into a chain of typed
// predicates applied to a gorm query.
package filters

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Predicate narrows a query.
type Predicate interface {
	Apply(db *gorm.DB) *gorm.DB
}

type equals struct {
	column string
	value  any
}

func (p equals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(p.column+" = ?", p.value)
}

type contains struct {
	column string
	term   string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (p contains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(p.term)) + "%"
	return db.Where("LOWER("+p.column+") LIKE ? ESCAPE '\\'", pattern)
}

// InvalidParamError reports a query parameter that could not be parsed.
type InvalidParamError struct {
	Param string
	Value string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: a whole number is required", e.Value, e.Param)
}

// Builder accumulates predicates and ordering. Blank values add nothing,
// so every filter is optional and the ones present are ANDed together.
type Builder struct {
	preds  []Predicate
	orders []string
	err    error
}

func New() *Builder { return &Builder{} }

// Exact matches column to value verbatim.
func (b *Builder) Exact(column, value string) *Builder {
	if value != "" {
		b.preds = append(b.preds, equals{column: column, value: value})
	}
	return b
}

// ExactInt parses value as an integer id or number. A parse failure is
// remembered and returned by Err; the predicate is skipped.
func (b *Builder) ExactInt(column, param, value string) *Builder {
	if value == "" {
		return b
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		if b.err == nil {
			b.err = &InvalidParamError{Param: param, Value: value}
		}
		return b
	}
	b.preds = append(b.preds, equals{column: column, value: n})
	return b
}

// IContains is a case-insensitive substring match.
func (b *Builder) IContains(column, value string) *Builder {
	if value != "" {
		b.preds = append(b.preds, contains{column: column, term: value})
	}
	return b
}

// OrderBy appends an ORDER BY term such as "rating desc".
func (b *Builder) OrderBy(term string) *Builder {
	b.orders = append(b.orders, term)
	return b
}

// Len is the number of predicates collected.
func (b *Builder) Len() int { return len(b.preds) }

// Err returns the first parameter parse failure.
func (b *Builder) Err() error { return b.err }

// Apply adds every predicate and ordering term to db.
func (b *Builder) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range b.preds {
		db = p.Apply(db)
	}
	for _, o := range b.orders {
		db = db.Order(o)
	}
	return db
}
