package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores a list of strings as a JSON array column.
type StringList []string

// Value implements driver.Valuer for database serialization.
func (l StringList) Value() (driver.Value, error) {
	cleaned := l.Clean()
	data, errMarshal := json.Marshal(cleaned)
	if errMarshal != nil {
		return nil, fmt.Errorf("string list marshal: %w", errMarshal)
	}
	return data, nil
}

// Scan implements sql.Scanner for database deserialization.
func (l *StringList) Scan(value any) error {
	if l == nil {
		return fmt.Errorf("string list scan: nil receiver")
	}
	if value == nil {
		*l = StringList{}
		return nil
	}

	switch typed := value.(type) {
	case []byte:
		return parseStringListFromBytes(l, typed)
	case string:
		return parseStringListFromBytes(l, []byte(typed))
	default:
		return fmt.Errorf("string list scan: unsupported type %T", value)
	}
}

func parseStringListFromBytes(target *StringList, data []byte) error {
	if len(data) == 0 {
		*target = StringList{}
		return nil
	}
	var list []string
	if errUnmarshal := json.Unmarshal(data, &list); errUnmarshal != nil {
		return fmt.Errorf("string list scan: %w", errUnmarshal)
	}
	*target = StringList(list)
	return nil
}

// Clean returns a copy with empty and whitespace-only entries removed.
func (l StringList) Clean() StringList {
	out := make(StringList, 0, len(l))
	for _, item := range l {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// Contains reports whether the list holds the given entry.
func (l StringList) Contains(entry string) bool {
	for _, item := range l {
		if item == entry {
			return true
		}
	}
	return false
}
