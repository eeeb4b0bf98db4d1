package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserIDList is a set of user ids persisted as a jsonb array.
type UserIDList []string

// Contains reports whether id is already in the list.
func (l UserIDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func (l UserIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UserIDList{}
	}
	return json.Marshal(l)
}

func (l *UserIDList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("models: cannot scan %T into UserIDList", src)
}

// JSONMap is an opaque structured payload persisted as jsonb.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("models: cannot scan %T into JSONMap", src)
}
