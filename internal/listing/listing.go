// Package listing turns the optional filter/sort/pagination parameters of the
// public book listing into a deterministic, fully parameterized query.
//
// Every predicate is kept together with its bound value as a single unit and
// the pair list is serialized at the very end, so placeholder numbering can
// never drift from the values it binds. Filter values are never concatenated
// into SQL text.
package listing

import (
	"strconv"
	"strings"

	apperrors "booksy/internal/errors"
	"booksy/internal/model"
	"booksy/internal/money"
)

// Sort options. Unrecognized values fall back to SortLatest.
const (
	SortLatest    = "latest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

// ConditionAll is the sentinel meaning "do not filter by condition".
const ConditionAll = "ALL"

// Pagination bounds.
const (
	DefaultLimit = 50
	MaxLimit     = 100
	MaxOffset    = 10000
)

// Params are the raw, untrusted listing inputs as they arrive from the query
// string. All fields are optional.
type Params struct {
	Query     string
	Condition string
	Min       string
	Max       string
	Sort      string
	Limit     string
	Offset    string
}

// Meta describes the page that was returned.
type Meta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// predicate pairs one WHERE fragment with the values bound to its
// placeholders.
type predicate struct {
	expr string
	args []any
}

// Query is a normalized, ready-to-serialize listing query.
type Query struct {
	preds  []predicate
	order  string
	limit  int
	offset int
}

// Build validates and normalizes params into a Query. The only rejected input
// is an unknown condition; malformed prices and sorts degrade silently per
// the listing contract.
func Build(p Params) (*Query, error) {
	q := &Query{
		limit:  clampLimit(p.Limit),
		offset: clampOffset(p.Offset),
	}

	// Fixed predicate order: status, text, condition, min, max. The order is
	// part of the contract because it determines positional parameter
	// numbering in the serialized SQL.
	q.preds = append(q.preds, predicate{
		expr: "books.status = ?",
		args: []any{model.BookStatusActive},
	})

	if text := strings.TrimSpace(p.Query); text != "" {
		pattern := "%" + text + "%"
		q.preds = append(q.preds, predicate{
			expr: "(books.title ILIKE ? OR books.author ILIKE ? OR users.username ILIKE ?)",
			args: []any{pattern, pattern, pattern},
		})
	}

	if cond := strings.TrimSpace(p.Condition); cond != "" && cond != ConditionAll {
		c := model.Condition(cond)
		if !c.Valid() {
			return nil, apperrors.ErrInvalidCondition
		}
		q.preds = append(q.preds, predicate{
			expr: "books.condition = ?",
			args: []any{c},
		})
	}

	if min, ok := money.ToCentsOptional(p.Min); ok {
		q.preds = append(q.preds, predicate{
			expr: "books.price_cents >= ?",
			args: []any{min},
		})
	}
	if max, ok := money.ToCentsOptional(p.Max); ok {
		q.preds = append(q.preds, predicate{
			expr: "books.price_cents <= ?",
			args: []any{max},
		})
	}

	q.order = resolveOrder(p.Sort)
	return q, nil
}

// Where serializes the predicate list into one conjunction plus its bound
// values, in the same pass so they cannot fall out of step.
func (q *Query) Where() (string, []any) {
	exprs := make([]string, 0, len(q.preds))
	args := make([]any, 0, len(q.preds))
	for _, p := range q.preds {
		exprs = append(exprs, p.expr)
		args = append(args, p.args...)
	}
	return strings.Join(exprs, " AND "), args
}

// Order returns the resolved ORDER BY expression. Recency is always the final
// tie-break so pages stay stable when many rows share a price.
func (q *Query) Order() string {
	return q.order
}

// Limit returns the clamped page size.
func (q *Query) Limit() int { return q.limit }

// Offset returns the clamped page offset.
func (q *Query) Offset() int { return q.offset }

func resolveOrder(sort string) string {
	switch sort {
	case SortPriceLow:
		return "books.price_cents ASC, books.created_at DESC"
	case SortPriceHigh:
		return "books.price_cents DESC, books.created_at DESC"
	default:
		return "books.created_at DESC"
	}
}

func clampLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func clampOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	if n > MaxOffset {
		return MaxOffset
	}
	return n
}
