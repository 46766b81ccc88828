package models

import "encoding/json"

// NullableString различает три состояния поля в PATCH-подобном JSON:
// поле отсутствует (Set=false), поле = null (Set=true, Value=nil),
// поле задано (Set=true, Value!=nil). Нужен для listId: явный null
// отвязывает запись от списка, отсутствие поля ничего не меняет.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
