package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core"
)

// crud holds the SQL plumbing shared by all repositories. Rows are read through `from`
// (a SELECT with its joins, grouped by `groupBy` when it aggregates) and written to `table`.
// Queries use "?" placeholders, rebound for the driver.
type crud[T any] struct {
	db       core.DBExecutor
	table    string
	from     string
	groupBy  string
	name     string // for error messages
	notFound error
}

func (c crud[T]) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return c.db
}

func (c crud[T]) selectQuery(cond where, orderBy string) string {
	var b strings.Builder
	b.WriteString(c.from)
	if len(cond.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(cond.conds, " AND "))
	}
	if c.groupBy != "" {
		b.WriteString(" ")
		b.WriteString(c.groupBy)
	}
	if orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderBy)
	}
	return b.String()
}

func (c crud[T]) get(ctx context.Context, svcExec []core.DBExecutor, cond where) (T, error) {
	var row T
	exec := c.getExec(svcExec)
	q := exec.Rebind(c.selectQuery(cond, ""))
	if err := exec.GetContext(ctx, &row, q, cond.args...); err != nil {
		return row, classifyErr(err, c.notFound, "finding "+c.name)
	}
	return row, nil
}

func (c crud[T]) getByID(ctx context.Context, svcExec []core.DBExecutor, alias string, id int64) (T, error) {
	return c.get(ctx, svcExec, newWhere().add(alias+".id = ?", id))
}

func (c crud[T]) list(ctx context.Context, svcExec []core.DBExecutor, cond where, orderBy string) ([]T, error) {
	rows := make([]T, 0)
	exec := c.getExec(svcExec)
	q := exec.Rebind(c.selectQuery(cond, orderBy))
	if err := exec.SelectContext(ctx, &rows, q, cond.args...); err != nil {
		return nil, classifyErr(err, nil, "querying "+c.name)
	}
	return rows, nil
}

// insert writes the named columns of row and returns the new id.
func (c crud[T]) insert(ctx context.Context, svcExec []core.DBExecutor, row interface{}, cols ...string) (int64, error) {
	params := make([]string, 0, len(cols))
	for _, col := range cols {
		params = append(params, ":"+col)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", c.table, strings.Join(cols, ", "), strings.Join(params, ", "))

	exec := c.getExec(svcExec)
	bound, args, err := exec.BindNamed(q, row)
	if err != nil {
		return 0, errors.Wrap(err, "binding "+c.name)
	}
	var id int64
	if err = exec.QueryRowxContext(ctx, bound, args...).Scan(&id); err != nil {
		return 0, classifyErr(err, nil, "inserting "+c.name)
	}
	return id, nil
}

// update writes the named columns of row (matched on its id).
func (c crud[T]) update(ctx context.Context, svcExec []core.DBExecutor, row interface{}, cols ...string) error {
	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		sets = append(sets, col+" = :"+col)
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", c.table, strings.Join(sets, ", "))

	res, err := c.getExec(svcExec).NamedExecContext(ctx, q, row)
	if err != nil {
		return classifyErr(err, nil, "updating "+c.name)
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating "+c.name)
	}
	if cnt == 0 {
		return c.notFound
	}
	return nil
}

// exists reports whether any row of table matches cond.
func exists(ctx context.Context, exec core.DBExecutor, table string, cond where) (bool, error) {
	q := "SELECT EXISTS (SELECT 1 FROM " + table
	if len(cond.conds) > 0 {
		q += " WHERE " + strings.Join(cond.conds, " AND ")
	}
	q += ")"

	var ok bool
	if err := exec.GetContext(ctx, &ok, exec.Rebind(q), cond.args...); err != nil {
		return false, errors.Wrap(err, "checking "+table)
	}
	return ok, nil
}

// where is a list of AND-ed conditions with "?" placeholders.
type where struct {
	conds []string
	args  []interface{}
}

func newWhere() where {
	return where{}
}

func (w where) add(cond string, args ...interface{}) where {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
	return w
}
