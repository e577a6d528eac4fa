// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type BaseModel struct {
	gorm.Model
}

// JSON is a JSONB column holding any JSON-serialisable value.
type JSON[T any] struct {
	Data T
}

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{Data: v}
}

func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan unmarshals a JSONB column into Data.
func (j *JSON[T]) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		var zero T
		j.Data = zero
		return nil
	default:
		return fmt.Errorf("JSON: expected []byte or string, got %T", src)
	}
	return json.Unmarshal(b, &j.Data)
}

func (JSON[T]) GormDataType() string {
	return "jsonb"
}
