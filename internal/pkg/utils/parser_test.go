package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsultationDuration(t *testing.T) {
	cases := []struct {
		content string
		minutes int
		ok      bool
	}{
		{"Konsultation 25 min, Verlauf stabil", 25, true},
		{"Dauer: 40min", 40, true},
		{"Gespraech ueber 30 Minuten gefuehrt", 30, true},
		{"15 MIN Kontrolle", 15, true},
		{"Erstgespraech 10 min, danach 20 min Beratung", 10, true},
		{"kein Zeitvermerk", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		minutes, ok := ParseConsultationDuration(tc.content)
		assert.Equal(t, tc.ok, ok, tc.content)
		assert.Equal(t, tc.minutes, minutes, tc.content)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("10.03.2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestGenerateSubmissionFilename(t *testing.T) {
	filename := GenerateSubmissionFilename("2026-0042", ".xml")
	assert.Contains(t, filename, "2026-0042_")
	assert.True(t, len(filename) > len("2026-0042_.xml"))
	assert.Equal(t, ".xml", filename[len(filename)-4:])
}

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "INV-20260310-143005.000", GenerateInvoiceNumber(now))
}
