package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "benchreview/pkg/domain-errors"
)

func TestValidateEdit(t *testing.T) {
	present := mustRecord(t, `{"pdf":"a.pdf","id":"p1","type":"present","text":"x","legacy_note":"keep"}`)
	table := mustRecord(t, `{"pdf":"a.pdf","id":"t1","type":"table","cell":"42"}`)
	unknown := mustRecord(t, `{"pdf":"a.pdf","id":"u1","type":"custom","weird":1}`)

	tests := []struct {
		name    string
		record  *Record
		field   string
		value   string
		wantErr bool
	}{
		{"checked verified", present, "checked", `"verified"`, false},
		{"checked cleared", present, "checked", `null`, false},
		{"checked free-form string", present, "checked", `"needs second look"`, false},
		{"checked must be a string", present, "checked", `true`, true},
		{"text edit", present, "text", `"Revenue"`, false},
		{"text cannot be null", present, "text", `null`, true},
		{"case_sensitive bool", present, "case_sensitive", `false`, false},
		{"case_sensitive rejects string", present, "case_sensitive", `"no"`, true},
		{"first_n non-negative", present, "first_n", `-1`, true},
		{"first_n integer", present, "first_n", `1.5`, true},
		{"max_diffs", present, "max_diffs", `2`, false},
		{"type change to known", present, "type", `"absent"`, false},
		{"type change to unknown", present, "type", `"bogus"`, true},
		{"url must be a url", present, "url", `"not a url"`, true},
		{"url accepted", present, "url", `"https://example.com/a.pdf"`, false},
		{"table field on present", present, "cell", `"x"`, true},
		{"typo rejected", present, "txet", `"x"`, true},
		{"existing extra editable", present, "legacy_note", `{"any":"thing"}`, false},
		{"table neighbour", table, "top_heading", `"Q1"`, false},
		{"table neighbour null", table, "left", `null`, false},
		{"pdf not editable", table, "pdf", `"b.pdf"`, true},
		{"id not editable", table, "id", `"t2"`, true},
		{"unknown type extra", unknown, "weird", `2`, false},
		{"unknown type common", unknown, "checked", `"rejected"`, false},
		{"unknown type new field", unknown, "text", `"x"`, true},
		{"invalid json", present, "text", `{`, true},
		{"blank field", present, "  ", `"x"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdit(tt.record, tt.field, json.RawMessage(tt.value))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEditableFields(t *testing.T) {
	fields := EditableFields(TypeOrder)
	assert.Contains(t, fields, "before")
	assert.Contains(t, fields, "after")
	assert.Contains(t, fields, FieldChecked)
	assert.NotContains(t, fields, "text")
	assert.NotContains(t, fields, FieldPDF)
	assert.IsIncreasing(t, fields)
}

func TestUpdateRecordRequestValidate(t *testing.T) {
	req := &UpdateRecordRequest{PDF: "a.pdf", ID: json.RawMessage(`"1"`), Field: " checked "}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "checked", req.Field)
	assert.JSONEq(t, `null`, string(req.Value))

	missingID := &UpdateRecordRequest{PDF: "a.pdf", Field: "checked"}
	assert.True(t, dErrors.HasCode(missingID.Validate(), dErrors.CodeValidation))

	var nilReq *UpdateRecordRequest
	assert.True(t, dErrors.HasCode(nilReq.Validate(), dErrors.CodeBadRequest))
}
