package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "benchreview/pkg/domain-errors"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
)

func (k valueKind) String() string {
	switch k {
	case kindBool:
		return "a boolean"
	case kindInt:
		return "an integer"
	default:
		return "a string"
	}
}

// fieldSpec describes the accepted shape of an editable field. rule is a
// go-playground/validator tag applied to the decoded value.
type fieldSpec struct {
	kind     valueKind
	nullable bool
	rule     string
}

var fieldValidate = validator.New()

// Linkage fields tie a record to its document and identity; edits to them
// would orphan the record from every (pdf, id) lookup.
var linkageFields = map[string]bool{
	FieldID:  true,
	FieldPDF: true,
}

var commonFields = map[string]fieldSpec{
	FieldType:     {kind: kindString, rule: "oneof=present absent order table math baseline"},
	FieldPage:     {kind: kindInt, nullable: true, rule: "gte=0"},
	FieldMaxDiffs: {kind: kindInt, nullable: true, rule: "gte=0"},
	FieldChecked:  {kind: kindString, nullable: true, rule: "max=64"},
	FieldURL:      {kind: kindString, nullable: true, rule: "omitempty,url"},
}

var textFields = map[string]fieldSpec{
	"text":           {kind: kindString},
	"case_sensitive": {kind: kindBool, nullable: true},
	"first_n":        {kind: kindInt, nullable: true, rule: "gte=0"},
	"last_n":         {kind: kindInt, nullable: true, rule: "gte=0"},
}

var typeFields = map[TestType]map[string]fieldSpec{
	TypePresent: textFields,
	TypeAbsent:  textFields,
	TypeOrder: {
		"before": {kind: kindString},
		"after":  {kind: kindString},
	},
	TypeTable: {
		"cell":         {kind: kindString},
		"up":           {kind: kindString, nullable: true},
		"down":         {kind: kindString, nullable: true},
		"left":         {kind: kindString, nullable: true},
		"right":        {kind: kindString, nullable: true},
		"top_heading":  {kind: kindString, nullable: true},
		"left_heading": {kind: kindString, nullable: true},
	},
	TypeMath: {
		"math": {kind: kindString},
	},
	TypeBaseline: {
		"max_repeats":                 {kind: kindInt, nullable: true, rule: "gte=1"},
		"check_disallowed_characters": {kind: kindBool, nullable: true},
	},
}

// EditableFields lists the named fields a test type defines, sorted.
// Extra fields already carried by a record are editable too but are not listed.
func EditableFields(t TestType) []string {
	names := make([]string, 0, len(commonFields)+8)
	for name := range commonFields {
		names = append(names, name)
	}
	for name := range typeFields[t] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupField(t TestType, name string) (fieldSpec, bool) {
	if spec, ok := commonFields[name]; ok {
		return spec, true
	}
	spec, ok := typeFields[t][name]
	return spec, ok
}

// ValidateEdit checks that field may be set to value on r.
//
// Named fields of the record's type are checked for shape and range. A field
// outside that set is accepted only when the record already carries it, so
// unmodelled fields stay editable while a misspelled name is rejected instead
// of being written as a new field nobody reads.
func ValidateEdit(r *Record, field string, value json.RawMessage) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return dErrors.New(dErrors.CodeValidation, "field is required")
	}
	if linkageFields[field] {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("field %q is not editable", field))
	}
	if len(bytes.TrimSpace(value)) == 0 {
		value = json.RawMessage("null")
	}
	if !json.Valid(value) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("value for %q is not valid JSON", field))
	}

	spec, ok := lookupField(r.Type(), field)
	if !ok {
		if r.Has(field) {
			return nil
		}
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("field %q is not defined for %s tests", field, r.Type()))
	}
	return spec.check(field, value)
}

func (s fieldSpec) check(field string, value json.RawMessage) error {
	if isNull(value) {
		if s.nullable {
			return nil
		}
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("field %q cannot be null", field))
	}

	var decoded any
	switch s.kind {
	case kindString:
		var v string
		if err := json.Unmarshal(value, &v); err != nil {
			return s.kindError(field)
		}
		decoded = v
	case kindBool:
		var v bool
		if err := json.Unmarshal(value, &v); err != nil {
			return s.kindError(field)
		}
		decoded = v
	case kindInt:
		var v int64
		if err := json.Unmarshal(value, &v); err != nil {
			return s.kindError(field)
		}
		decoded = v
	}

	if s.rule == "" {
		return nil
	}
	if err := fieldValidate.Var(decoded, s.rule); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid value for %q", field))
	}
	return nil
}

func (s fieldSpec) kindError(field string) error {
	return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("field %q must be %s", field, s.kind))
}

// IsKnownField reports whether name is defined for any test type. It is used
// to vet edits that address no record, where there is no type to check against.
func IsKnownField(name string) bool {
	if _, ok := commonFields[name]; ok {
		return true
	}
	for _, fields := range typeFields {
		if _, ok := fields[name]; ok {
			return true
		}
	}
	return false
}

// IsLinkageField reports whether name ties a record to its document or identity.
func IsLinkageField(name string) bool {
	return linkageFields[name]
}
