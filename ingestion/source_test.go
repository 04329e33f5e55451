package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/projectinbox/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `[
  {
    "client_name": "Acme",
    "project_id": "P1",
    "project_details": "Site migration",
    "last_interaction": "2024-05-01",
    "customer_id": "C9",
    "dev_id": "D3"
  },
  {
    "client_name": "Globex",
    "project_id": "P2",
    "project_details": "Billing portal",
    "last_interaction": "2024-04-20",
    "customer_id": "C4",
    "dev_id": "D1"
  }
]`

func TestDecodeSource(t *testing.T) {
	rows, err := DecodeSource(strings.NewReader(sampleSource))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, core.SourceRow{
		ClientName:      "Acme",
		ProjectID:       "P1",
		ProjectDetails:  "Site migration",
		LastInteraction: "2024-05-01",
		CustomerID:      "C9",
		DevID:           "D3",
	}, rows[0])
	assert.Equal(t, "P2", rows[1].ProjectID)
}

func TestDecodeSource_EmptyArray(t *testing.T) {
	rows, err := DecodeSource(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		msg     string
	}{
		{
			name:    "malformed json",
			input:   `[{"client_name": "Acme"`,
			wantErr: ErrInvalidSource,
		},
		{
			name:    "not an array",
			input:   `{"client_name": "Acme"}`,
			wantErr: ErrInvalidSource,
		},
		{
			name:    "missing field",
			input:   `[{"client_name":"Acme","project_id":"P1","project_details":"x","last_interaction":"y","customer_id":"C9"}]`,
			wantErr: core.ErrMissingField,
			msg:     "row 0",
		},
		{
			name:    "empty project id",
			input:   `[{"client_name":"Acme","project_id":"","project_details":"x","last_interaction":"y","customer_id":"C9","dev_id":"D"}]`,
			wantErr: core.ErrInvalidSourceRow,
			msg:     "project_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSource(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSource)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o600))

	rows, err := LoadSourceFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLoadSourceFile_Missing(t *testing.T) {
	_, err := LoadSourceFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSourceFile_InvalidContentNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))

	_, err := LoadSourceFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.Contains(t, err.Error(), "broken.json")
}
