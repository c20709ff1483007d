// Package intake turns raw host intake form submissions into flattened,
// fixed-column records ready for tabular import.
//
// The package is pure: it never touches storage. Appending the produced
// record (and allocating its Intake_ID from the current row count) is the
// job of the intake service, which must be the only writer of the records
// table.
package intake

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindMultiSelect
	KindDate
)

// listSeparator joins multi-select answers when they arrive as one string.
const listSeparator = ", "

// Value is a single answer: a scalar string, an ordered list of selected
// options, or a date.
type Value struct {
	kind  Kind
	text  string
	items []string
	date  time.Time
}

// Scalar wraps a free-text or single-choice answer.
func Scalar(s string) Value { return Value{kind: KindScalar, text: s} }

// MultiSelect wraps the selected options of a checkbox question.
func MultiSelect(items ...string) Value {
	return Value{kind: KindMultiSelect, items: append([]string(nil), items...)}
}

// Date wraps a date answer.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Items returns the answer as a list of options. A scalar is split on ", "
// for compatibility with answers flattened upstream.
func (v Value) Items() []string {
	switch v.kind {
	case KindMultiSelect:
		return append([]string(nil), v.items...)
	case KindScalar:
		if v.text == "" {
			return nil
		}
		return strings.Split(v.text, listSeparator)
	}
	return nil
}

// Time returns the date of a KindDate value.
func (v Value) Time() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// Text renders the answer as a single string. Dates are formatted as
// yyyy-MM-dd in loc.
func (v Value) Text(loc *time.Location) string {
	switch v.kind {
	case KindMultiSelect:
		return strings.Join(v.items, listSeparator)
	case KindDate:
		return v.date.In(loc).Format(dateLayout)
	}
	return v.text
}

// Tagged JSON keys of a Value. The object form carries exactly one of
// them; a multi-select with nothing ticked is {"multi":[]}.
const (
	wireScalar = "scalar"
	wireMulti  = "multi"
	wireDate   = "date"
)

var errAmbiguousValue = errors.New("answer value must set exactly one of scalar, multi, date")

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindMultiSelect:
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(map[string][]string{wireMulti: items})
	case KindDate:
		return json.Marshal(map[string]time.Time{wireDate: v.date})
	}
	return json.Marshal(map[string]string{wireScalar: v.text})
}

// UnmarshalJSON implements json.Unmarshaler. A bare JSON string or array is
// accepted as a scalar or multi-select answer.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Scalar(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = MultiSelect(list...)
		return nil
	}

	var w map[string]json.RawMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w) != 1 {
		return errAmbiguousValue
	}
	for key, raw := range w {
		switch key {
		case wireScalar:
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			*v = Scalar(s)
		case wireMulti:
			if err := json.Unmarshal(raw, &list); err != nil {
				return err
			}
			*v = MultiSelect(list...)
		case wireDate:
			var d time.Time
			if err := json.Unmarshal(raw, &d); err != nil {
				return err
			}
			*v = Date(d)
		default:
			return errAmbiguousValue
		}
	}
	return nil
}

// Submission is one raw form response keyed by question label.
type Submission struct {
	SubmittedAt     time.Time        `json:"submitted_at"`
	RespondentEmail string           `json:"respondent_email"`
	Answers         map[string]Value `json:"answers"`
}

// Answer looks up the answer to the question with the given label.
func (s Submission) Answer(label string) (Value, bool) {
	v, ok := s.Answers[label]
	return v, ok
}
