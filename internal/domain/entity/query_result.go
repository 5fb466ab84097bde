package entity

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind tags the dynamic type of a value returned by an arbitrary query.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindInteger
	KindReal
	KindNumeric
	KindBool
	KindTime
	KindBlob
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindNumeric:
		return "numeric"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Value is a tagged cell value. The zero Value is NULL.
type Value struct {
	kind ValueKind
	raw  interface{}
}

// Column describes one result column.
type Column struct {
	Name         string `json:"name"`
	DatabaseType string `json:"database_type,omitempty"`
}

// Row is an ordered mapping from column name to value.
type Row struct {
	Columns []string
	Values  []Value
}

// QueryResult is the row set and column metadata of an arbitrary query.
type QueryResult struct {
	Columns []Column
	Rows    []Row
}

func NullValue() Value {
	return Value{}
}

func TextValue(s string) Value {
	return Value{kind: KindText, raw: s}
}

func IntegerValue(i int64) Value {
	return Value{kind: KindInteger, raw: i}
}

// NewValue tags a raw driver value. databaseType is the engine's column type
// name and decides how ambiguous encodings ([]byte, numeric strings) are read.
func NewValue(src interface{}, databaseType string) Value {
	dbType := strings.ToUpper(databaseType)
	switch v := src.(type) {
	case nil:
		return NullValue()
	case int64:
		return IntegerValue(v)
	case int:
		return IntegerValue(int64(v))
	case int32:
		return IntegerValue(int64(v))
	case int16:
		return IntegerValue(int64(v))
	case int8:
		return IntegerValue(int64(v))
	case uint32:
		return IntegerValue(int64(v))
	case float64:
		return Value{kind: KindReal, raw: v}
	case float32:
		return Value{kind: KindReal, raw: float64(v)}
	case bool:
		return Value{kind: KindBool, raw: v}
	case time.Time:
		return Value{kind: KindTime, raw: v}
	case decimal.Decimal:
		return Value{kind: KindNumeric, raw: v}
	case string:
		return textOrNumeric(v, dbType)
	case []byte:
		if isBlobType(dbType) {
			b := make([]byte, len(v))
			copy(b, v)
			return Value{kind: KindBlob, raw: b}
		}
		return textOrNumeric(string(v), dbType)
	default:
		return TextValue(fmt.Sprint(v))
	}
}

func textOrNumeric(s, dbType string) Value {
	if isNumericType(dbType) {
		if d, err := decimal.NewFromString(s); err == nil {
			return Value{kind: KindNumeric, raw: d}
		}
	}
	return TextValue(s)
}

func isNumericType(dbType string) bool {
	return strings.HasPrefix(dbType, "NUMERIC") || strings.HasPrefix(dbType, "DECIMAL")
}

func isBlobType(dbType string) bool {
	return dbType == "BLOB" || dbType == "BYTEA"
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Interface returns the underlying Go value (nil for NULL).
func (v Value) Interface() interface{} {
	return v.raw
}

// String renders the value as plain text; NULL renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindText:
		return v.raw.(string)
	case KindInteger:
		return strconv.FormatInt(v.raw.(int64), 10)
	case KindReal:
		return strconv.FormatFloat(v.raw.(float64), 'f', -1, 64)
	case KindNumeric:
		return v.raw.(decimal.Decimal).String()
	case KindBool:
		return strconv.FormatBool(v.raw.(bool))
	case KindTime:
		t := v.raw.(time.Time)
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(DateLayout)
		}
		return t.Format(time.RFC3339)
	case KindBlob:
		return base64.StdEncoding.EncodeToString(v.raw.([]byte))
	default:
		return fmt.Sprint(v.raw)
	}
}

// Int64 reads the value as an integer when it holds a whole number.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.raw.(int64), true
	case KindReal:
		f := v.raw.(float64)
		if f == float64(int64(f)) {
			return int64(f), true
		}
	case KindNumeric:
		d := v.raw.(decimal.Decimal)
		if d.Equal(d.Truncate(0)) {
			return d.IntPart(), true
		}
	case KindText:
		if i, err := strconv.ParseInt(strings.TrimSpace(v.raw.(string)), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInteger, KindNumeric, KindBool:
		return []byte(v.String()), nil
	case KindReal:
		return json.Marshal(v.raw.(float64))
	default:
		return json.Marshal(v.raw)
	}
}

// Get returns the value of the named column.
func (r Row) Get(name string) (Value, bool) {
	for i, col := range r.Columns {
		if col == name && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return NullValue(), false
}

// MarshalJSON encodes the row as an object keeping column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val := NullValue()
		if i < len(r.Values) {
			val = r.Values[i]
		}
		encoded, err := val.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ColumnNames returns the result's column names in order.
func (q *QueryResult) ColumnNames() []string {
	names := make([]string, len(q.Columns))
	for i, col := range q.Columns {
		names[i] = col.Name
	}
	return names
}
