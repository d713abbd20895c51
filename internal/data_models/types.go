package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var jsonNull = []byte("null")

// Date is a calendar day encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string in %s format", DateLayout)
	}

	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("date must be in %s format", DateLayout)
	}
	d.Time = t
	return nil
}

// OptionalID distinguishes an absent id from an explicit null.
// Set is true whenever the key was present in the payload.
type OptionalID struct {
	Set bool
	ID  *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.ID = nil
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("id must be a positive integer or null")
	}
	o.ID = &id
	return nil
}

// OptionalDate is the date counterpart of OptionalID.
type OptionalDate struct {
	Set  bool
	Date *Date
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Date = nil
		return nil
	}

	var d Date
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Date = &d
	return nil
}

// TimePtr returns the underlying time, or nil when no date was given.
func (o OptionalDate) TimePtr() *time.Time {
	if o.Date == nil {
		return nil
	}
	t := o.Date.Time
	return &t
}
