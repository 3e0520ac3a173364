package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateMarshalsDayPrecision(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC))
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-03-14"`, string(raw))
}

func TestDateUnmarshalFormats(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14"`), &d))
	require.Equal(t, 2025, d.Time().Year())

	var fromRFC Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14T10:30:00Z"`), &fromRFC))
	require.Equal(t, d.Time(), fromRFC.Time())
}

func TestErrorTaxonomy(t *testing.T) {
	base := NewError(CodeNotFound, "job not found", nil)
	wrapped := NewError(CodeInternal, "lookup failed", base)

	require.True(t, Is(base, CodeNotFound))
	require.False(t, Is(base, CodeConflict))
	require.True(t, Is(wrapped, CodeInternal))

	validationErr := NewValidationError("invalid job", map[string]string{"title": "title is required"})
	require.True(t, Is(validationErr, CodeValidation))
	var validation *Error
	require.ErrorAs(t, validationErr, &validation)
	require.Equal(t, "title is required", validation.Fields["title"])
}
