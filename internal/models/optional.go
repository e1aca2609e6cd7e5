package models

import (
	"bytes"
	"encoding/json"
)

// Optional хранит значение поля JSON вместе с признаком его присутствия.
//
// Отсутствующее поле: Set == false. Поле со значением null: Set == true,
// Value == nil. Любое другое значение: Set == true, Value != nil.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some возвращает заданное Optional со значением v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// UnmarshalJSON вызывается только для присутствующих полей, в том числе для null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON пишет null для пустого значения.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Get возвращает значение или нулевое значение типа для null и отсутствия.
func (o Optional[T]) Get() T {
	var zero T
	if o.Value == nil {
		return zero
	}
	return *o.Value
}

// NonNull сообщает, что поле передано и не равно null.
func (o Optional[T]) NonNull() bool {
	return o.Set && o.Value != nil
}

// NonEmpty сообщает, что поле передано строкой ненулевой длины.
// Для нестроковых типов совпадает с NonNull.
func (o Optional[T]) NonEmpty() bool {
	if !o.NonNull() {
		return false
	}
	if s, ok := any(*o.Value).(string); ok {
		return s != ""
	}
	return true
}
