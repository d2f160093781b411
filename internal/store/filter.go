package store

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// where composes typed conditions (equality, substring, range) into a
// single parameterized WHERE clause. Column names always come from code,
// values always travel as bind arguments.
type where struct {
	conds squirrel.And
}

// eq adds column = value.
func (w *where) eq(column string, value any) *where {
	w.conds = append(w.conds, squirrel.Eq{column: value})
	return w
}

// notEq adds column <> value.
func (w *where) notEq(column string, value any) *where {
	w.conds = append(w.conds, squirrel.NotEq{column: value})
	return w
}

// contains adds a case-insensitive (ASCII) substring match of term against
// any of columns. An empty term adds nothing.
func (w *where) contains(term string, columns ...string) *where {
	if term == "" || len(columns) == 0 {
		return w
	}
	pattern := "%" + escapeLike(term) + "%"
	or := make(squirrel.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, squirrel.Expr(fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, col), pattern))
	}
	w.conds = append(w.conds, or)
	return w
}

// between adds a one- or two-sided range on a text-encoded column. Any
// bound implies the column is set.
func (w *where) between(column string, from, to *string, exclusiveTo bool) *where {
	if from == nil && to == nil {
		return w
	}
	w.conds = append(w.conds, squirrel.NotEq{column: nil})
	if from != nil {
		w.conds = append(w.conds, squirrel.GtOrEq{column: *from})
	}
	if to != nil {
		if exclusiveTo {
			w.conds = append(w.conds, squirrel.Lt{column: *to})
		} else {
			w.conds = append(w.conds, squirrel.LtOrEq{column: *to})
		}
	}
	return w
}

// timeRange adds a TimeRange bound on column.
func (w *where) timeRange(column string, r TimeRange) *where {
	var from, to *string
	if r.From != nil {
		s := encodeTime(*r.From)
		from = &s
	}
	if r.To != nil {
		s := encodeTime(*r.To)
		to = &s
	}
	return w.between(column, from, to, r.ExclusiveTo)
}

// apply attaches the accumulated conditions to b.
func (w *where) apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if len(w.conds) == 0 {
		return b
	}
	return b.Where(w.conds)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// taskOrderBy returns the ORDER BY expressions for a task ordering.
func taskOrderBy(order TaskOrder, prefix string) []string {
	col := func(name string) string { return prefix + name }
	// Unset due dates sort after every real one.
	dueNullsLast := []string{col("due_at") + " IS NULL ASC", col("due_at") + " ASC"}

	switch order {
	case OrderDueAsc:
		return []string{col("due_at") + " ASC", col("id") + " ASC"}
	case OrderActive:
		return append(dueNullsLast, col("updated_at")+" DESC", col("id")+" DESC")
	case OrderRecentlyUpdated:
		return []string{col("updated_at") + " DESC", col("id") + " DESC"}
	default:
		statusRank := fmt.Sprintf(
			"CASE %s WHEN 'todo' THEN 1 WHEN 'in_progress' THEN 2 ELSE 3 END ASC", col("status"))
		cols := append([]string{statusRank}, dueNullsLast...)
		return append(cols,
			col("priority")+" ASC",
			col("updated_at")+" DESC",
			col("id")+" DESC",
		)
	}
}
