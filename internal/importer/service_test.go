package importer_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/importer"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

func TestService_Import(t *testing.T) {
	type args struct {
		format importer.Format
		input  string
	}

	type testCase struct {
		name    string
		args    args
		wantIDs []string
		wantErr bool
	}

	tests := []testCase{
		{
			name: "JSONArray",
			args: args{
				format: importer.FormatJSON,
				input:  ` [{"transaction_id":"a","date":"2024-01-02","amount":12.5},{"id":"b","date":"2024-01-03","amount":-300}]`,
			},
			wantIDs: []string{"a", "b"},
		},
		{
			name: "JSONEnvelope",
			args: args{
				format: importer.FormatJSON,
				input:  `{"transactions":[{"transaction_id":"c","date":"2024-01-02","amount":"7.10"}]}`,
			},
			wantIDs: []string{"c"},
		},
		{
			name: "JSONScalar",
			args: args{
				format: importer.FormatJSON,
				input:  `42`,
			},
			wantErr: true,
		},
		{
			name: "JSONTruncated",
			args: args{
				format: importer.FormatJSON,
				input:  `[{"transaction_id":"a"`,
			},
			wantErr: true,
		},
		{
			name: "CSV",
			args: args{
				format: importer.FormatCSV,
				input:  "transaction_id,date,amount\nd,2024-01-02,5\n",
			},
			wantIDs: []string{"d"},
		},
		{
			name: "UnknownFormat",
			args: args{
				format: importer.Format("xlsx"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := importer.NewService().Import(tt.args.format, strings.NewReader(tt.args.input))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			txs := transaction.Normalize(records)
			ids := make([]string, len(txs))

			for i, tx := range txs {
				ids[i] = tx.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_Import_JSONKeepsNumbersExact(t *testing.T) {
	records, err := importer.NewService().Import(importer.FormatJSON, strings.NewReader(`[{"amount":0.1}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, json.Number("0.1"), records[0]["amount"])
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, importer.FormatJSON, importer.FormatFromPath("/tmp/batch.JSON"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromPath("export.csv"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromPath("export"))
}
