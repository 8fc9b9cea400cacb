package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/text-mining/internal/config"
	"github.com/jonathan/text-mining/internal/schemas"
)

const sampleDocument = `
        This is sample text, including word counts?

        *** START OF THE PROJECT GUTENBERG EBOOK FRANKENSTEIN ***
        This is sample text, including word counts. Here is: a-sentence !
        Including word counts?

        -----

        *** END OF THE PROJECT GUTENBERG EBOOK FRANKENSTEIN ***
        Including word counts?

        `

// execute runs a fresh command tree with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func gutenbergServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/84/84-0.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	t.Cleanup(server.Close)
	return server
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TEXTMINE_URL", "TEXTMINE_DEST_DIR", "TEXTMINE_TIMEOUT_SECONDS", "TEXTMINE_USER_AGENT", "TEXTMINE_LOG_LEVEL", "TEXTMINE_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestAnalyzeCommand_Text(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, "analyze", "--url", server.URL+"/files/84/84-0.txt", "--dest", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "MOST COMMON WORDS (top 3)")
	assert.Contains(t, stdout, "counts")
	assert.Contains(t, stdout, "MOST COMMON PHRASES (top 3)")
	assert.Contains(t, stdout, "including word counts")
	assert.NotContains(t, stdout, "DOCUMENT")
	assert.FileExists(t, filepath.Join(dir, "84-0.txt"))
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)

	stdout, _, err := execute(t, "analyze",
		"--url", server.URL+"/files/84/84-0.txt",
		"--dest", t.TempDir(),
		"--top", "2",
		"--format", "json")
	require.NoError(t, err)
	require.NoError(t, schemas.ValidateReport([]byte(stdout)))

	var report struct {
		Tokens   int `json:"tokens"`
		TopWords []struct {
			Word  string `json:"word"`
			Count int    `json:"count"`
		} `json:"top_words"`
		TopPhrases []struct {
			Phrase []string `json:"phrase"`
			Count  int      `json:"count"`
		} `json:"top_phrases"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, 14, report.Tokens)
	require.Len(t, report.TopWords, 2)
	assert.Equal(t, "counts", report.TopWords[0].Word)
	assert.Equal(t, 2, report.TopWords[0].Count)
	require.Len(t, report.TopPhrases, 2)
	assert.Equal(t, []string{"including", "word", "counts"}, report.TopPhrases[0].Phrase)
}

func TestAnalyzeCommand_Verbose(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)

	stdout, stderr, err := execute(t, "analyze", "--url", server.URL+"/files/84/84-0.txt", "--dest", t.TempDir(), "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stdout, "DOCUMENT")
	assert.Contains(t, stdout, "Tokens:   14")
	assert.Contains(t, stderr, "step=download")
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestAnalyzeCommand_AmbiguousDelimiters(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)

	_, _, err := execute(t, "analyze",
		"--url", server.URL+"/files/84/84-0.txt",
		"--dest", t.TempDir(),
		"--start", "is",
		"--end", "counts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous or missing boundary")
}

func TestAnalyzeCommand_DownloadFailure(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)

	_, _, err := execute(t, "analyze", "--url", server.URL+"/missing.txt", "--dest", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "textmine.yaml")
	cfgBody := "url: " + server.URL + "/files/84/84-0.txt\n" +
		"dest_dir: " + dir + "\n" +
		"top: 1\n" +
		"format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0644))

	stdout, _, err := execute(t, "analyze", "--config", cfgPath)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Len(t, report["top_words"], 1)
}

func TestAnalyzeCommand_FlagsOverrideConfig(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "textmine.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"url": "`+server.URL+`/missing.txt", "format": "json"}`), 0644))

	stdout, _, err := execute(t, "analyze", "--config", cfgPath,
		"--url", server.URL+"/files/84/84-0.txt",
		"--dest", dir,
		"--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MOST COMMON WORDS")
}

func TestAnalyzeCommand_InvalidConfig(t *testing.T) {
	clearEnv(t)

	_, _, err := execute(t, "analyze", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestCountCommand(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "84-0.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

	stdout, _, err := execute(t, "count", "--file", path, "--top", "1")
	require.NoError(t, err)

	assert.Contains(t, stdout, "MOST COMMON WORDS (top 1)")
	assert.Contains(t, stdout, "including word counts")
}

func TestCountCommand_CustomDelimiters(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("skip <<Word WORD word>> skip"), 0644))

	stdout, _, err := execute(t, "count", "--file", path, "--start", "<<", "--end", ">>", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"distinct_words": 1`)
	assert.Contains(t, stdout, `"count": 3`)
}

func TestCountCommand_MissingFile(t *testing.T) {
	clearEnv(t)

	_, _, err := execute(t, "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file must be provided")

	_, _, err = execute(t, "count", "--file", filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestDownloadCommand(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, "download", "--url", server.URL+"/files/84/84-0.txt", "--dest", dir)
	require.NoError(t, err)

	want := filepath.Join(dir, "84-0.txt")
	assert.Equal(t, want+"\n", stdout)

	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDownloadCommand_EnvDestDir(t *testing.T) {
	clearEnv(t)
	server := gutenbergServer(t)
	dir := t.TempDir()
	t.Setenv("TEXTMINE_DEST_DIR", dir)

	stdout, _, err := execute(t, "download", "--url", server.URL+"/files/84/84-0.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "84-0.txt")+"\n", stdout)
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := execute(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["required"], "top_phrases")
}

func TestCommands_RejectArgs(t *testing.T) {
	clearEnv(t)

	_, _, err := execute(t, "analyze", "extra")
	assert.Error(t, err)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEXTMINE_URL", "https://env.example.com/env.txt")
	t.Setenv("TEXTMINE_DEST_DIR", "/from/env")

	cfgPath := filepath.Join(t.TempDir(), "textmine.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"url": "https://file.example.com/a.txt", "dest_dir": "/from/file", "top": 4}`), 0644))

	root := &rootOptions{configPath: cfgPath}
	flags := &commandFlags{}
	cmd := &cobra.Command{Use: "probe"}
	flags.bindSource(cmd)
	flags.bindAnalysis(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--dest", "/from/flag"}))

	cfg, err := root.loadConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/env.txt", cfg.URL)
	assert.Equal(t, "/from/flag", cfg.DestDir)
	assert.Equal(t, 4, cfg.Top)
	assert.Equal(t, config.DefaultStartDelim, cfg.StartDelim)
}
