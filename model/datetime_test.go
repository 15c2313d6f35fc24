package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateTime_Marshal(t *testing.T) {
	d := NewDateTime(time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2026-09-01T10:30:00"`, string(b))
}

func TestDateTime_Unmarshal(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-01T10:30:00"`), &d))
	require.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), d.Time)

	var zero DateTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &zero))
	require.True(t, zero.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"2026-09-01"`), &d))
}
