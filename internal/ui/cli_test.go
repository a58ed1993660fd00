package ui

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/moments/internal/config"
	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/word"
)

func init() {
	DisableColor()
}

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	return cfg
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	app := NewApp(cfg)
	var stdout, stderr bytes.Buffer
	app.root.SetOut(&stdout)
	app.root.SetErr(&stderr)
	app.root.SetArgs(args)
	err := app.Execute()
	return stdout.String(), stderr.String(), err
}

func wordServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, config.Default(), "version")
	require.NoError(t, err)
	assert.Equal(t, "moments dev (commit: none)\n", out)
}

func TestWordCmd_Success(t *testing.T) {
	var gotLang, gotSession string
	srv := wordServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("lang")
		gotSession = r.Header.Get("sessId")
		_ = json.NewEncoder(w).Encode(word.Record{
			Word:               "chat",
			Language:           "french",
			Meanings:           []string{"cat"},
			EnglishTranslation: "cat",
			Remarks:            []string{},
			Phonetics:          "ʃa",
		})
	})

	out, stderr, err := execute(t, testConfig(srv.URL), "word", "--lang", "french")
	require.NoError(t, err)

	assert.Equal(t, "french", gotLang)
	assert.NotEmpty(t, gotSession)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "chat  /ʃa/")
	assert.Contains(t, out, "FRENCH · cat")
	assert.Contains(t, out, "  │ cat")
	assert.Contains(t, out, "Updated at ")
	assert.NotContains(t, out, "Remarks")
}

func TestWordCmd_DefaultLanguageFromConfig(t *testing.T) {
	var gotLang string
	srv := wordServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("lang")
		_ = json.NewEncoder(w).Encode(word.Fallback())
	})

	cfg := testConfig(srv.URL)
	cfg.Language.Default = "tamil"
	cfg.Language.DefaultCountry = "in"

	_, _, err := execute(t, cfg, "word")
	require.NoError(t, err)
	assert.Equal(t, "tamil", gotLang)
}

func TestWordCmd_FailureFallsBack(t *testing.T) {
	srv := wordServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	out, stderr, err := execute(t, testConfig(srv.URL), "word", "--lang", "german")
	require.NoError(t, err)

	assert.Contains(t, out, "Eucatastrophe")
	assert.Contains(t, out, "A sudden turn towards good")
	assert.NotContains(t, out, "Updated at")
	assert.Contains(t, stderr, "Error: Could not fetch new word:")
	assert.Contains(t, stderr, "500")
}

func TestWordCmd_JSON(t *testing.T) {
	srv := wordServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(word.Fallback())
	})

	out, _, err := execute(t, testConfig(srv.URL), "word", "--json")
	require.NoError(t, err)

	var rec word.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.True(t, rec.Equal(word.Fallback()))
}

func TestWordCmd_UnknownLanguage(t *testing.T) {
	srv := wordServer(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an unknown language")
	})

	_, _, err := execute(t, testConfig(srv.URL), "word", "--lang", "klingon")
	require.Error(t, err)
	assert.ErrorIs(t, err, language.ErrUnknownLanguage)
	assert.ErrorIs(t, err, language.ErrInvalidSelection)
}

func TestLanguagesCmd(t *testing.T) {
	cfg := config.Default()
	cfg.Language.Default = "tamil"
	cfg.Language.DefaultCountry = "in"

	out, _, err := execute(t, cfg, "languages")
	require.NoError(t, err)

	assert.Contains(t, out, "United States (us)")
	assert.Contains(t, out, "India (in)  4 languages")
	assert.Contains(t, out, "China (cn)  2 languages")
	assert.NotContains(t, out, "France (fr)  ")

	var tamil string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Tamil") {
			tamil = line
		}
	}
	assert.Equal(t, "    tamil      Tamil ✓", tamil)
}

func TestLanguagesCmd_InvalidDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Language.Default = "klingon"

	_, _, err := execute(t, cfg, "languages")
	assert.Error(t, err)
}

func TestPromptValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{name: "keeps current on empty input", input: "\n", current: "60s", want: "60s"},
		{name: "replaces with input", input: "30s\n", current: "60s", want: "30s"},
		{name: "trims whitespace", input: "  tamil \n", current: "english", want: "tamil"},
		{name: "EOF keeps current", input: "", current: "mocha", want: "mocha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := promptValue(bufio.NewReader(strings.NewReader(tt.input)), &out, "Label", tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptTheme_RetriesInvalid(t *testing.T) {
	var out bytes.Buffer
	got := promptTheme(bufio.NewReader(strings.NewReader("neon\nLATTE\n")), &out, "mocha")
	assert.Equal(t, "latte", got)
	assert.Contains(t, out.String(), `Invalid theme "neon"`)
}

func TestRunConfigInteractive_CreatesAndEdits(t *testing.T) {
	clearMomentsEnv(t)
	path := filepath.Join(t.TempDir(), "moments", "config.toml")

	// Decline editing: the file is created with defaults.
	var out bytes.Buffer
	require.NoError(t, runConfigInteractive(path, strings.NewReader("n\n"), &out))
	assert.Contains(t, out.String(), "Creating with default values")
	_, err := os.Stat(path)
	require.NoError(t, err)

	// Edit: change the refresh interval, language, and theme.
	input := strings.Join([]string{
		"y",
		"",      // base url
		"",      // timeout
		"30s",   // interval
		"hindi", // language
		"in",    // country
		"",      // catalog
		"latte", // theme
	}, "\n") + "\n"
	out.Reset()
	require.NoError(t, runConfigInteractive(path, strings.NewReader(input), &out))
	assert.Contains(t, out.String(), "Configuration saved!")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "30s", cfg.Refresh.Interval)
	assert.Equal(t, "hindi", cfg.Language.Default)
	assert.Equal(t, "in", cfg.Language.DefaultCountry)
	assert.Equal(t, "latte", cfg.UI.Theme)
}

func TestRunConfigInteractive_RejectsUnknownLanguage(t *testing.T) {
	clearMomentsEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	input := "y\n\n\n\nklingon\n\n\n\n"
	err := runConfigInteractive(path, strings.NewReader(input), &bytes.Buffer{})
	require.Error(t, err)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "english", cfg.Language.Default, "invalid edits must not be saved")
}

func clearMomentsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MOMENTS_API_BASE_URL", "MOMENTS_API_TIMEOUT", "MOMENTS_REFRESH_INTERVAL",
		"MOMENTS_LANGUAGE", "MOMENTS_DEFAULT_COUNTRY", "MOMENTS_CATALOG_PATH",
		"MOMENTS_SESSION_DB", "MOMENTS_UI_THEME",
	} {
		t.Setenv(key, "")
	}
}
