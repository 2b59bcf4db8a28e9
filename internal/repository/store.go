package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Store は外部のレコードストアへの唯一の読み取り窓口です
// 書き込み系の操作は持ちません
type Store interface {
	List(ctx context.Context, table Table, opts ListOptions, dest interface{}) error
	Get(ctx context.Context, table Table, key interface{}, dest interface{}) error
	ListRelated(ctx context.Context, table Table, foreignKey string, value interface{}, opts ListOptions, dest interface{}) error
	ListJoined(ctx context.Context, table Table, joins []Join, opts ListOptions, dest interface{}) error
}

type operator int

const (
	opEq operator = iota
	opIn
)

// Predicate は列に対する等価条件またはIN条件です
type Predicate struct {
	Column string
	op     operator
	Value  interface{}
}

// Eq は column = value の条件を作成します
func Eq(column string, value interface{}) Predicate {
	return Predicate{Column: column, op: opEq, Value: value}
}

// In は column IN (values...) の条件を作成します
// values にはスライスを渡します
func In(column string, values interface{}) Predicate {
	return Predicate{Column: column, op: opIn, Value: values}
}

// Order は並び順の指定です
type Order struct {
	Column string
	Desc   bool
}

// Asc は昇順の並び順を作成します
func Asc(column string) Order { return Order{Column: column} }

// Desc は降順の並び順を作成します
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// ListOptions は一覧取得の条件と並び順です
type ListOptions struct {
	Where   []Predicate
	OrderBy []Order
}

// Join は一覧の各行に関連テーブルをJSONとして付与する指定です
// Many が false の場合は row_to_json で1行、true の場合は json_agg で配列を付与します
type Join struct {
	Table         Table
	As            string
	LocalColumn   string
	ForeignColumn string
	Many          bool
}

// SQLStore はPostgreSQLに対するStoreの実装です
type SQLStore struct {
	db *DB
}

// NewSQLStore は新しいSQLStoreを作成します
func NewSQLStore(db *DB) *SQLStore {
	return &SQLStore{db: db}
}

// List はテーブルの行を条件と並び順に従って取得します
func (s *SQLStore) List(ctx context.Context, table Table, opts ListOptions, dest interface{}) error {
	return s.ListJoined(ctx, table, nil, opts, dest)
}

// Get は主キーで1行を取得します。該当行が無い場合は ErrNotFound を返します
func (s *SQLStore) Get(ctx context.Context, table Table, key interface{}, dest interface{}) error {
	def, ok := schema[table]
	if !ok {
		return fmt.Errorf("unknown table %s: %w", table, ErrInvalidQuery)
	}

	query, args, err := buildSelect(table, nil, ListOptions{Where: []Predicate{Eq(def.key, key)}})
	if err != nil {
		return err
	}
	query += " LIMIT 1"

	if err := s.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %v: %w", table, key, ErrNotFound)
		}
		return fmt.Errorf("failed to get %s %v: %w", table, key, err)
	}
	return nil
}

// ListRelated は外部キーが value に一致する行を取得します
func (s *SQLStore) ListRelated(ctx context.Context, table Table, foreignKey string, value interface{}, opts ListOptions, dest interface{}) error {
	opts.Where = append([]Predicate{Eq(foreignKey, value)}, opts.Where...)
	return s.ListJoined(ctx, table, nil, opts, dest)
}

// ListJoined は関連テーブルを結合した行を1回のクエリで取得します
func (s *SQLStore) ListJoined(ctx context.Context, table Table, joins []Join, opts ListOptions, dest interface{}) error {
	query, args, err := buildSelect(table, joins, opts)
	if err != nil {
		return err
	}

	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("failed to list %s: %w", table, err)
	}
	return nil
}

// buildSelect はPostgreSQL向けのSELECT文とバインド変数を組み立てます
// 識別子はschemaに定義されたものだけを許可し、値はすべてバインド変数で渡します
func buildSelect(table Table, joins []Join, opts ListOptions) (string, []interface{}, error) {
	def, ok := schema[table]
	if !ok {
		return "", nil, fmt.Errorf("unknown table %s: %w", table, ErrInvalidQuery)
	}

	fields := make([]string, 0, len(def.columns)+len(joins))
	for _, c := range def.columns {
		fields = append(fields, "t."+c)
	}

	for i, j := range joins {
		expr, err := joinExpr(i, def, j)
		if err != nil {
			return "", nil, err
		}
		fields = append(fields, expr)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(fields, ", "))
	b.WriteString(" FROM ")
	b.WriteString(string(table))
	b.WriteString(" t")

	var args []interface{}
	hasIn := false
	if len(opts.Where) > 0 {
		conds := make([]string, 0, len(opts.Where))
		for _, p := range opts.Where {
			if !def.hasColumn(p.Column) {
				return "", nil, fmt.Errorf("unknown column %s.%s: %w", table, p.Column, ErrInvalidQuery)
			}
			switch p.op {
			case opIn:
				v := reflect.ValueOf(p.Value)
				if v.Kind() != reflect.Slice {
					return "", nil, fmt.Errorf("IN value for %s must be a slice: %w", p.Column, ErrInvalidQuery)
				}
				// 空のIN条件は常に偽になる
				if v.Len() == 0 {
					conds = append(conds, "FALSE")
					continue
				}
				conds = append(conds, "t."+p.Column+" IN (?)")
				hasIn = true
			default:
				conds = append(conds, "t."+p.Column+" = ?")
			}
			args = append(args, p.Value)
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	if len(opts.OrderBy) > 0 {
		orders := make([]string, 0, len(opts.OrderBy))
		for _, o := range opts.OrderBy {
			if !def.hasColumn(o.Column) {
				return "", nil, fmt.Errorf("unknown column %s.%s: %w", table, o.Column, ErrInvalidQuery)
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			orders = append(orders, "t."+o.Column+" "+dir)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(orders, ", "))
	}

	query := b.String()
	if hasIn {
		var err error
		query, args, err = sqlx.In(query, args...)
		if err != nil {
			return "", nil, fmt.Errorf("failed to expand IN query: %w", err)
		}
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

// joinExpr は結合1件分の相関サブクエリを組み立てます
func joinExpr(i int, local tableDef, j Join) (string, error) {
	foreign, ok := schema[j.Table]
	if !ok {
		return "", fmt.Errorf("unknown join table %s: %w", j.Table, ErrInvalidQuery)
	}
	if !local.hasColumn(j.LocalColumn) || !foreign.hasColumn(j.ForeignColumn) {
		return "", fmt.Errorf("unknown join columns %s/%s: %w", j.LocalColumn, j.ForeignColumn, ErrInvalidQuery)
	}
	if !isIdentifier(j.As) {
		return "", fmt.Errorf("invalid join alias %q: %w", j.As, ErrInvalidQuery)
	}

	alias := fmt.Sprintf("j%d", i)
	cond := fmt.Sprintf("%s.%s = t.%s", alias, j.ForeignColumn, j.LocalColumn)
	if j.Many {
		return fmt.Sprintf("COALESCE((SELECT json_agg(%s ORDER BY %s.%s) FROM %s %s WHERE %s), '[]'::json) AS %s",
			alias, alias, foreign.key, j.Table, alias, cond, j.As), nil
	}
	return fmt.Sprintf("(SELECT row_to_json(%s) FROM %s %s WHERE %s LIMIT 1) AS %s",
		alias, j.Table, alias, cond, j.As), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
