package history

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpass/internal/domain/history"
	"scanpass/internal/domain/scan"
)

func sampleEntries() []history.Entry {
	return []history.Entry{
		{
			ID: "2",
			Result: scan.Result{
				Name: "John Doe", Email: "john.doe@example.com",
				AccountID: "ACC-2", Timestamp: "2026-01-01T00:00:02.000Z",
			},
			ScannedBy: "1", ScannedByName: "Admin User",
		},
		{
			ID: "1",
			Result: scan.Result{
				Name: "John Doe", Email: "john.doe@example.com",
				AccountID: "ACC-1", Timestamp: "2026-01-01T00:00:01.000Z",
			},
			ScannedBy: "1", ScannedByName: "Admin User",
		},
	}
}

func TestPrintEntries(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name    string
		format  string
		entries []history.Entry
		want    []string
		wantErr bool
	}{
		{name: "simple", format: "simple", entries: sampleEntries(), want: []string{"Найдено сканирований: 2", "1. [JD] John Doe", "ACC-2"}},
		{name: "default", format: "", entries: sampleEntries(), want: []string{"ACC-1"}},
		{name: "table", format: "table", entries: sampleEntries(), want: []string{"Account ID", "Admin User", "Всего сканирований: 2"}},
		{name: "empty", format: "table", entries: nil, want: []string{"Сканирований пока нет"}},
		{name: "unknown", format: "csv", entries: sampleEntries(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printEntries(&buf, tt.entries, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintEntries_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printEntries(&buf, sampleEntries(), "json"))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "ACC-2", decoded[0]["accountId"])
	assert.Equal(t, "Admin User", decoded[0]["scannedByName"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
