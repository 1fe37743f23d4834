package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Patch - состояние одного поля частичного обновления.
// Отсутствующее в JSON поле = Unset, явный null = Clear, значение = Set.
type Patch[T any] struct {
	present bool
	null    bool
	value   T
}

func Unset[T any]() Patch[T] {
	return Patch[T]{}
}

func Clear[T any]() Patch[T] {
	return Patch[T]{present: true, null: true}
}

func Set[T any](v T) Patch[T] {
	return Patch[T]{present: true, value: v}
}

// IsUnset - поле не передано, не трогаем
func (p Patch[T]) IsUnset() bool {
	return !p.present
}

// IsClear - передан явный null
func (p Patch[T]) IsClear() bool {
	return p.present && p.null
}

// Get возвращает значение и true, если поле было передано не-null значением
func (p Patch[T]) Get() (T, bool) {
	if !p.present || p.null {
		var zero T
		return zero, false
	}
	return p.value, true
}

// UnmarshalJSON вызывается только для присутствующих полей,
// в том числе для явного null.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.present = true
	if string(data) == "null" {
		p.null = true
		return nil
	}
	return json.Unmarshal(data, &p.value)
}

// Date - дата в теле запроса. Клиент присылает либо "2006-01-02"
// из date-инпута, либо полный RFC3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
