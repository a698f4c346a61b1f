package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

// execute runs the root command against a throwaway SQLite database.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("SAPN_DATABASE__TYPE", "sqlite")
	t.Setenv("SAPN_DATABASE__DSN", filepath.Join(dir, "sapn.db"))
	t.Setenv("SAPN_BACKFILL__LOCK_FILE", filepath.Join(dir, "backfill.lock"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(dir, "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "SAPN-ELC-11-00042")
	require.NoError(t, err)
	require.Equal(t, "category ELC, subcategory 11, sequence 42\n", out)

	out, err = execute(t, "parse", "SAPN-ELC-11-00042", "-o", "json")
	require.NoError(t, err)
	var parsed parsedIdentifier
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Equal(t, parsedIdentifier{Identifier: "SAPN-ELC-11-00042", Category: "ELC", Subcategory: "11", Sequence: 42}, parsed)

	_, err = execute(t, "parse", "SAPN-elc-11-00042")
	require.Error(t, err)
}

func TestUnknownFormatRejected(t *testing.T) {
	_, err := execute(t, "parse", "SAPN-ELC-11-00042", "-o", "xml")
	require.ErrorContains(t, err, "unsupported output format")
}

func TestNextCommand_EmptyPartition(t *testing.T) {
	out, err := execute(t, "next", "ELC", "11")
	if err != nil && strings.Contains(err.Error(), "sqlite") {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, err)
	require.Equal(t, "partition ELC/11: 0 assigned, highest 0, next SAPN-ELC-11-00001, 99999 remaining\n", out)

	out, err = execute(t, "next", "MEC", "02", "-o", "yaml")
	require.NoError(t, err)
	var status map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &status))
	require.Equal(t, "SAPN-MEC-02-00001", status["next"])

	_, err = execute(t, "next", "mec", "02")
	require.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	out, err := execute(t, "migrate", "-o", "json")
	if err != nil && strings.Contains(err.Error(), "sqlite") {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, err)

	var status migrationStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	require.Equal(t, migrationStatus{Database: "sqlite", Version: 1, Dirty: false}, status)
}

func TestBackfillCommand_NothingToDo(t *testing.T) {
	out, err := execute(t, "backfill", "--workers", "2", "-o", "json")
	if err != nil && strings.Contains(err.Error(), "sqlite") {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, err)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.EqualValues(t, 0, summary["scanned"])
}
