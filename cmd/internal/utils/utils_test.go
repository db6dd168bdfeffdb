package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "2023-05-01T10:00:00Z", FormatEpoch(1682935200000))
	assert.Equal(t, "1970-01-01T00:00:00Z", FormatEpoch(0))
}

func TestParseEpoch(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"2023-05-01T10:00:00Z", 1682935200000},
		{"  2023-05-01T10:00:00Z  ", 1682935200000},
		{"2023-05-01 10:00:00", 1682935200000},
		{"2023-05-01", 1682899200000},
	}

	for _, tc := range cases {
		got, err := ParseEpoch(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseEpochRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "01/05/2023", "1682935200"} {
		_, err := ParseEpoch(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseEpochRoundTrips(t *testing.T) {
	ms, err := ParseEpoch("2024-11-30T23:59:59Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-11-30T23:59:59Z", FormatEpoch(ms))
}

func TestSanitize(t *testing.T) {
	title := "  spaced out  "
	payload := struct {
		Name  string
		Title *string
		Tags  []string
		Count int
		Skip  *string
	}{
		Name:  "  padded  ",
		Title: &title,
		Tags:  []string{" a ", "b "},
	}

	Sanitize(&payload)

	assert.Equal(t, "padded", payload.Name)
	assert.Equal(t, "spaced out", *payload.Title)
	assert.Equal(t, []string{"a", "b"}, payload.Tags)
	assert.Nil(t, payload.Skip)
}

func TestSanitizePanicsOnNonPointer(t *testing.T) {
	assert.Panics(t, func() {
		Sanitize(struct{ Name string }{Name: "x"})
	})
}
