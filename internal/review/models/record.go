package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Well-known field names shared by every test type.
const (
	FieldID       = "id"
	FieldPDF      = "pdf"
	FieldPage     = "page"
	FieldType     = "type"
	FieldMaxDiffs = "max_diffs"
	FieldChecked  = "checked"
	FieldURL      = "url"
)

// Field is one name/value pair of a record. Value holds the compact JSON
// encoding exactly as it will be written back.
type Field struct {
	Name  string
	Value json.RawMessage
}

// Record is one reviewable assertion about a document.
//
// Invariants:
//   - Field names are unique; a later duplicate in the source replaces the
//     earlier value in place
//   - Field order is the order first seen in the source and survives
//     marshalling unchanged
//   - Fields the review workflow does not interpret are kept verbatim
type Record struct {
	fields []Field
}

// NewRecord builds a record from ordered fields. Values are compacted.
func NewRecord(fields ...Field) (*Record, error) {
	r := &Record{}
	for _, f := range fields {
		if err := r.Set(f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// UnmarshalJSON decodes a single JSON object while keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	fields := make([]Field, 0, 8)
	positions := make(map[string]int, 8)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		value, err := compact(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		if i, seen := positions[key]; seen {
			fields[i].Value = value
			continue
		}
		positions[key] = len(fields)
		fields = append(fields, Field{Name: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after record object")
	}

	r.fields = fields
	return nil
}

// MarshalJSON writes the record's fields in their original order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Fields returns a copy of the record's ordered fields.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	for i, f := range r.fields {
		out[i] = Field{Name: f.Name, Value: append(json.RawMessage(nil), f.Value...)}
	}
	return out
}

// Get returns the raw value of name.
func (r *Record) Get(name string) (json.RawMessage, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether the record carries name, including explicit nulls.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set assigns value to name, appending the field when it is new.
// An empty value is stored as JSON null.
func (r *Record) Set(name string, value json.RawMessage) error {
	if len(bytes.TrimSpace(value)) == 0 {
		value = json.RawMessage("null")
	}
	v, err := compact(value)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v
			return nil
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
	return nil
}

// Restore puts a field back to a previous state captured with Get.
// When existed is false the field is removed.
func (r *Record) Restore(name string, previous json.RawMessage, existed bool) {
	if existed {
		_ = r.Set(name, previous)
		return
	}
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	return &Record{fields: r.Fields()}
}

// PDF returns the owning document name, or "" when the field is missing,
// null, or not a string.
func (r *Record) PDF() string {
	return r.stringField(FieldPDF)
}

// ID returns the record identifier as compact JSON.
func (r *Record) ID() json.RawMessage {
	v, _ := r.Get(FieldID)
	return v
}

// MatchesID compares identifiers by their JSON literal, so "7" and 7 differ.
func (r *Record) MatchesID(id json.RawMessage) bool {
	own := r.ID()
	if own == nil {
		return false
	}
	other, err := compact(id)
	if err != nil {
		return false
	}
	return bytes.Equal(own, other)
}

// Type returns the test type; values outside the known set map to TypeUnknown.
func (r *Record) Type() TestType {
	return ParseTestType(r.stringField(FieldType))
}

// Checked returns the review status. Missing and null are both unreviewed.
// Non-string values are reported by their JSON text.
func (r *Record) Checked() CheckStatus {
	raw, ok := r.Get(FieldChecked)
	if !ok || isNull(raw) {
		return StatusUnreviewed
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return CheckStatus(s)
	}
	return CheckStatus(raw)
}

// IsReviewed reports whether checked holds any non-null value.
func (r *Record) IsReviewed() bool {
	raw, ok := r.Get(FieldChecked)
	return ok && !isNull(raw)
}

func (r *Record) stringField(name string) string {
	raw, ok := r.Get(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func compact(raw json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, name string) error {
	var key bytes.Buffer
	enc := json.NewEncoder(&key)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(name); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(key.Bytes(), "\n"))
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
