package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores an ordered list of URLs in a single jsonb column.
// A nil list marshals as an empty array so columns never hold SQL NULL.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	return json.Unmarshal(data, l)
}

// Contains reports whether url is present in the list
func (l StringList) Contains(url string) bool {
	for _, u := range l {
		if u == url {
			return true
		}
	}
	return false
}

// Remove returns a copy of the list with the first occurrence of url
// removed. Removing a URL that is not present is a no-op.
func (l StringList) Remove(url string) StringList {
	out := make(StringList, 0, len(l))
	removed := false
	for _, u := range l {
		if !removed && u == url {
			removed = true
			continue
		}
		out = append(out, u)
	}
	return out
}
