package commands

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/tosql"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with stdin and returns stdout and
// stderr.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestRun_StdinDefaultQuery(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, "name,qty\napple,3\nbanana,5\n")
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"apple\",\"qty\":3}\n{\"name\":\"banana\",\"qty\":5}\n", stdout)
}

func TestRun_QueryArgument(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, "name,qty\napple,3\nbanana,5\n",
		"--format", "csv", "SELECT name, qty * 2 AS double FROM a WHERE qty > 3")
	require.NoError(t, err)
	assert.Equal(t, "name,double\nbanana,10\n", stdout)
}

func TestRun_AutoColumns(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, "-rw-r--r-- 1 alice 120 a.txt\n-rw-r--r-- 1 bob 80 b.txt\n",
		"--auto", "SELECT c_c, c_d FROM a ORDER BY c_d")
	require.NoError(t, err)
	assert.Equal(t, "{\"c_c\":\"bob\",\"c_d\":80}\n{\"c_c\":\"alice\",\"c_d\":120}\n", stdout)
}

func TestRun_ExplicitColumns(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, "1  x\n2  y\n",
		"-c", "id, label", "--format", "tsv", "SELECT label FROM a WHERE id = 2")
	require.NoError(t, err)
	assert.Equal(t, "label\ny\n", stdout)
}

func TestRun_Delimiter(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, "id;label\n1;x\n2;y\n",
		"-d", ";", "--format", "csv", "SELECT label FROM a WHERE id = 1")
	require.NoError(t, err)
	assert.Equal(t, "label\nx\n", stdout)
}

func TestRun_FileInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	orders := filepath.Join(dir, "orders.csv")
	customers := filepath.Join(dir, "customers.json")
	require.NoError(t, os.WriteFile(orders, []byte("id,customer\n1,10\n2,20\n"), 0600))
	require.NoError(t, os.WriteFile(customers, []byte("{\"id\":10,\"name\":\"alice\"}\n{\"id\":20,\"name\":\"bob\"}\n"), 0600))

	stdout, stderr, err := runCommand(t, "",
		"-i", orders, "-i", customers, "--log-level", "debug",
		"SELECT a.id, b.name FROM a JOIN b ON a.customer = b.id ORDER BY a.id")
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1,\"name\":\"alice\"}\n{\"id\":2,\"name\":\"bob\"}\n", stdout)
	assert.Contains(t, stderr, "input parsed")
	assert.Contains(t, stderr, "alias=b")
}

func TestRun_SQLFile(t *testing.T) {
	t.Parallel()

	sqlFile := filepath.Join(t.TempDir(), "query.sql")
	require.NoError(t, os.WriteFile(sqlFile, []byte("SELECT COUNT(*) AS n FROM a"), 0600))

	stdout, _, err := runCommand(t, "v,w\n1,2\n3,4\n", "-f", sqlFile, "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":2}\n", stdout)
}

func TestRun_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("format from extension", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(dir, "result.csv")
		stdout, _, err := runCommand(t, "v,w\n1,2\n", "-o", output)
		require.NoError(t, err)
		assert.Empty(t, stdout)

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "v,w\n1,2\n", string(content))
	})

	t.Run("explicit format wins", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(dir, "result.txt")
		_, _, err := runCommand(t, "v,w\n1,2\n", "-o", output, "--format", "tsv")
		require.NoError(t, err)

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "v\tw\n1\t2\n", string(content))
	})

	t.Run("compressed output reads back", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(dir, "result.jsonl.zst")
		_, _, err := runCommand(t, "v,w\n1,2\n", "-o", output)
		require.NoError(t, err)

		table, err := tosql.InferFile(t.Context(), output, tosql.ParseHints{})
		require.NoError(t, err)
		assert.Equal(t, []tosql.Row{{int64(1), int64(2)}}, table.Rows())
	})
}

func TestRun_Save(t *testing.T) {
	t.Parallel()

	savePath := filepath.Join(t.TempDir(), "saved.db")
	_, stderr, err := runCommand(t, "name,qty\napple,3\nbanana,5\n",
		"--save", "--save-path", savePath, "-t", "fruits", "--log-level", "info", "SELECT 1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "table saved")

	db, err := sql.Open("sqlite", savePath)
	require.NoError(t, err)
	defer db.Close()

	var n int64
	require.NoError(t, db.QueryRowContext(t.Context(), "SELECT SUM(qty) FROM fruits").Scan(&n))
	assert.Equal(t, int64(8), n)
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	config := filepath.Join(t.TempDir(), "tosql.yaml")
	require.NoError(t, os.WriteFile(config, []byte("format: csv\n"), 0600))

	stdout, _, err := runCommand(t, "v,w\n1,2\n", "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "v,w\n1,2\n", stdout)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unsupported format", args: []string{"--format", "yaml"}},
		{name: "invalid log level", args: []string{"--log-level", "loud"}},
		{name: "missing sql file", args: []string{"-f", filepath.Join(t.TempDir(), "missing.sql")}},
		{name: "missing config file", args: []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{name: "missing input", args: []string{"-i", filepath.Join(t.TempDir(), "missing.csv")}},
		{name: "bad query", args: []string{"SELEC 1"}},
		{name: "invalid delimiter", args: []string{"-d", "ab"}},
		{name: "too many arguments", args: []string{"SELECT 1", "SELECT 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runCommand(t, "v,w\n1,2\n", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRun_QueryErrorIsTyped(t *testing.T) {
	t.Parallel()

	_, _, err := runCommand(t, "v,w\n1,2\n", "SELECT missing FROM a")
	assert.ErrorIs(t, err, tosql.ErrQuery)
}

func TestLoadQuery(t *testing.T) {
	t.Parallel()

	v := viper.New()
	query, err := loadQuery(v, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultQuery, query)

	query, err = loadQuery(v, []string{"SELECT 2"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", query)
}

func TestSplitColumns(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitColumns(""))
	assert.Nil(t, splitColumns("  "))
	assert.Equal(t, []string{"a", "b", "c"}, splitColumns("a, b ,c"))
}

func TestSetupLogging(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	v := viper.New()
	v.Set("log-level", "info")

	logger, err := SetupLogging(v, &out)
	require.NoError(t, err)
	logger.Info("hello")
	logger.Debug("hidden")
	assert.Contains(t, out.String(), "hello")
	assert.NotContains(t, out.String(), "hidden")
}
