package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/cmd/gigdash/internal/cli"
	"github.com/MrJamesThe3rd/gigdash/internal/auth"
)

const records = `[
	{"transaction_id":"1","date":"2024-01-15","amount":-1000,"category":["Transfer","Payroll"]},
	{"transaction_id":"2","date":"2024-01-20","amount":50,"category":["Food and Drink"]},
	{"transaction_id":"3","date":"2024-02-05","amount":30,"category":["Shops"]},
	{"transaction_id":"4","date":"2024-02-06","amount":200,"category":["Payment","Credit Card"]}
]`

// setup points the CLI at a fresh file store and clears the auth secret.
func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("BUDGET_FILE", filepath.Join(dir, "limits.json"))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AMQP_URL", "")

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestSummary(t *testing.T) {
	dir := setup(t)

	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(records), 0o600))

	_, err := run(t, "budget", "set", "Food and Drink", "40")
	require.NoError(t, err)

	out, err := run(t, "summary", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "4 transactions")
	assert.Contains(t, out, "Jan 24")
	assert.Contains(t, out, "$1,000.00")
	assert.Contains(t, out, "Transfer")
	assert.Contains(t, out, "$50.00 / $40.00")
	assert.Contains(t, out, "100% over")
	assert.Contains(t, out, "$0.00 / Not Set")
}

func TestSummary_Rejects(t *testing.T) {
	dir := setup(t)

	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(records), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"MissingFile", []string{"summary"}},
		{"UnknownFile", []string{"summary", "--file", filepath.Join(dir, "nope.json")}},
		{"BadTimeframe", []string{"summary", "--file", path, "--timeframe", "year"}},
		{"BadFormat", []string{"summary", "--file", path, "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestBudget(t *testing.T) {
	setup(t)

	out, err := run(t, "budget", "set", "Shops", "12.5")
	require.NoError(t, err)
	assert.Equal(t, "Shops limit set to $12.50\n", out)

	out, err = run(t, "budget", "get")
	require.NoError(t, err)

	var shops, transport string
	for line := range strings.SplitSeq(out, "\n") {
		switch {
		case strings.Contains(line, "Shops"):
			shops = line
		case strings.Contains(line, "Transportation"):
			transport = line
		}
	}

	assert.Contains(t, shops, "$12.50")
	assert.Contains(t, transport, "Not Set")

	_, err = run(t, "budget", "set", "Shops", "-1")
	assert.Error(t, err)

	_, err = run(t, "budget", "set", "Transportation", "0")
	require.NoError(t, err)

	out, err = run(t, "budget", "get")
	require.NoError(t, err)

	for line := range strings.SplitSeq(out, "\n") {
		if strings.Contains(line, "Transportation") {
			assert.Contains(t, line, "Not Set")
			assert.NotContains(t, line, "$0.00")
		}
	}

	out, err = run(t, "budget", "clear", "Shops")
	require.NoError(t, err)
	assert.Equal(t, "Shops limit cleared\n", out)

	out, err = run(t, "budget", "get")
	require.NoError(t, err)
	assert.NotContains(t, out, "$12.50")
}

func TestToken(t *testing.T) {
	setup(t)

	_, err := run(t, "token", "user-1")
	require.Error(t, err, "no secret configured")

	t.Setenv("JWT_SECRET", "secret")

	out, err := run(t, "token", "user-1", "--email", "a@example.com")
	require.NoError(t, err)

	claims, err := auth.NewVerifier(auth.Config{Secret: "secret"}).Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
}
