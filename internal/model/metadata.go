package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// MetaValue is a metadata field value: either a parsed integer or the raw
// string the parser fell back to. The two cases are closed on purpose so the
// fallback behavior stays explicit everywhere a field is read.
type MetaValue struct {
	intVal int
	strVal string
	isInt  bool
}

// IntValue creates an integer metadata value.
func IntValue(v int) MetaValue {
	return MetaValue{intVal: v, isInt: true}
}

// StringValue creates a string metadata value.
func StringValue(s string) MetaValue {
	return MetaValue{strVal: s}
}

// IsInt reports whether the value holds a parsed integer.
func (v MetaValue) IsInt() bool {
	return v.isInt
}

// Int returns the integer value, or 0 for string values.
func (v MetaValue) Int() int {
	return v.intVal
}

// String renders the value as text. Integer values render in base 10, which
// makes filter comparisons against string-typed constraints well defined.
func (v MetaValue) String() string {
	if v.isInt {
		return strconv.Itoa(v.intVal)
	}
	return v.strVal
}

// MarshalJSON encodes integers as JSON numbers and everything else as strings.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	if v.isInt {
		return json.Marshal(v.intVal)
	}
	return json.Marshal(v.strVal)
}

// UnmarshalJSON accepts JSON numbers and strings.
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = IntValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("metadata value must be a number or string: %w", err)
	}
	*v = StringValue(s)
	return nil
}

// Metadata maps lowercased field names to their values.
type Metadata map[string]MetaValue

// Value implements driver.Valuer so metadata persists as JSONB.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), m)
	}
	return json.Unmarshal(bytes, m)
}
