package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTemplateRequest_ToPatch(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantDueDay    *int
		clearDueDay   bool
		clearCategory bool
		empty         bool
	}{
		{name: "absent fields are untouched", body: `{}`, empty: true},
		{name: "explicit null clears", body: `{"due_day": null, "category_id": null}`, clearDueDay: true, clearCategory: true},
		{name: "value sets", body: `{"due_day": 5}`, wantDueDay: intPtr(5)},
		{name: "null due day only", body: `{"due_day": null, "name": "Rent"}`, clearDueDay: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTemplateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			patch := req.ToPatch()
			assert.Equal(t, tt.wantDueDay, patch.DueDay)
			assert.Equal(t, tt.clearDueDay, patch.ClearDueDay)
			assert.Equal(t, tt.clearCategory, patch.ClearCategoryID)
			assert.Nil(t, patch.CategoryID)
			assert.Equal(t, tt.empty, patch.IsEmpty())
		})
	}
}

func TestNullable_RejectsWrongType(t *testing.T) {
	var req UpdateTemplateRequest
	assert.Error(t, json.Unmarshal([]byte(`{"due_day": "soon"}`), &req))
}

func intPtr(v int) *int {
	return &v
}
