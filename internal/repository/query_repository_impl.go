package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"patient-record-manager/internal/domain/entity"
	domainRepo "patient-record-manager/internal/domain/repository"
	"patient-record-manager/pkg/sqlstmt"

	"gorm.io/gorm"
)

type queryRepository struct {
	db       *gorm.DB
	notifier domainRepo.ChangeNotifier
}

func NewQueryRepository(db *gorm.DB, notifier domainRepo.ChangeNotifier) domainRepo.QueryRepository {
	return &queryRepository{db: db, notifier: notifier}
}

// Execute hands the query text to the driver untouched, bypassing gorm's
// placeholder rewriting, and reads back every row.
func (r *queryRepository) Execute(ctx context.Context, query string) (*entity.QueryResult, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	result, err := scanResult(rows)
	if err != nil {
		return nil, err
	}

	if sqlstmt.IsWrite(query) {
		r.notifier.Notify(sqlstmt.Tables(query)...)
	}
	return result, nil
}

func scanResult(rows *sql.Rows) (*entity.QueryResult, error) {
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := &entity.QueryResult{
		Columns: make([]entity.Column, len(columnTypes)),
		Rows:    []entity.Row{},
	}
	names := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		names[i] = ct.Name()
		result.Columns[i] = entity.Column{Name: ct.Name(), DatabaseType: ct.DatabaseTypeName()}
	}

	for rows.Next() {
		raw := make([]interface{}, len(names))
		dest := make([]interface{}, len(names))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		values := make([]entity.Value, len(raw))
		for i, v := range raw {
			values[i] = entity.NewValue(v, result.Columns[i].DatabaseType)
		}
		result.Rows = append(result.Rows, entity.Row{Columns: names, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *queryRepository) DependentTables(ctx context.Context, query string) ([]string, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	switch entity.Dialect(r.db.Dialector.Name()) {
	case entity.DialectPostgres:
		return r.postgresDependentTables(ctx, sqlDB, query)
	case entity.DialectSQLite:
		return r.sqliteDependentTables(ctx, sqlDB, query)
	default:
		return nil, fmt.Errorf("dependent tables: unsupported dialect %q", r.db.Dialector.Name())
	}
}

// sqliteSchemaRoot is the root page of sqlite_master itself.
const sqliteSchemaRoot = 1

// sqliteDependentTables compiles the query with EXPLAIN and maps the root
// page of every cursor opened for reading in the main database back to its
// table. Index cursors resolve to the indexed table.
func (r *queryRepository) sqliteDependentTables(ctx context.Context, sqlDB *sql.DB, query string) ([]string, error) {
	rows, err := sqlDB.QueryContext(ctx, "EXPLAIN "+query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	opcodeIdx, rootIdx, dbIdx := indexOf(columns, "opcode"), indexOf(columns, "p2"), indexOf(columns, "p3")
	if opcodeIdx < 0 || rootIdx < 0 || dbIdx < 0 {
		return nil, fmt.Errorf("dependent tables: unexpected EXPLAIN columns %v", columns)
	}

	roots := make(map[int64]bool)
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		switch asString(raw[opcodeIdx]) {
		case "OpenRead", "ReopenIdx":
			if asInt(raw[dbIdx]) == 0 {
				roots[asInt(raw[rootIdx])] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []string{}, nil
	}

	var schema []struct {
		TblName  string
		Rootpage int64
	}
	if err := r.db.WithContext(ctx).Raw("SELECT tbl_name, rootpage FROM sqlite_master WHERE rootpage > 0").Scan(&schema).Error; err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(roots))
	if roots[sqliteSchemaRoot] {
		names["sqlite_master"] = true
	}
	for _, s := range schema {
		if roots[s.Rootpage] {
			names[strings.ToLower(s.TblName)] = true
		}
	}
	return sortedKeys(names), nil
}

type postgresPlanNode struct {
	RelationName string             `json:"Relation Name"`
	Plans        []postgresPlanNode `json:"Plans"`
}

// postgresDependentTables collects every relation the planner scans. Views
// are already rewritten into their base relations at this point.
func (r *queryRepository) postgresDependentTables(ctx context.Context, sqlDB *sql.DB, query string) ([]string, error) {
	var raw []byte
	if err := sqlDB.QueryRowContext(ctx, "EXPLAIN (FORMAT JSON) "+query).Scan(&raw); err != nil {
		return nil, err
	}

	var explained []struct {
		Plan postgresPlanNode `json:"Plan"`
	}
	if err := json.Unmarshal(raw, &explained); err != nil {
		return nil, fmt.Errorf("dependent tables: decode plan: %w", err)
	}

	names := make(map[string]bool)
	var walk func(n postgresPlanNode)
	walk = func(n postgresPlanNode) {
		if n.RelationName != "" {
			names[strings.ToLower(n.RelationName)] = true
		}
		for _, child := range n.Plans {
			walk(child)
		}
	}
	for _, e := range explained {
		walk(e.Plan)
	}
	return sortedKeys(names), nil
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return ""
}

func asInt(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	}
	return -1
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
