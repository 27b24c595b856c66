package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

// newTestRunner wires a runner against a fake backend with output captured.
func newTestRunner(t *testing.T, handler http.Handler) (*Runner, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := shared.DefaultConfig()
	config.API.BaseURL = server.URL
	config.Storage.StateDir = t.TempDir()
	config.Database.Path = filepath.Join(t.TempDir(), "cache.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Output: output,
	})
	t.Cleanup(func() { runner.Close() })

	return runner, output
}

func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "strum", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"strum"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds the service clients over one shared client", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.client == nil || runner.chords == nil || runner.songs == nil {
				t.Fatal("expected clients to be constructed")
			}
			if runner.session == nil || runner.engine == nil {
				t.Fatal("expected session store and engine to be constructed")
			}
		})

		t.Run("with provided dependencies keeps them", func(t *testing.T) {
			config := shared.DefaultConfig()
			client := services.NewClient("http://example.com", nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Config: config, Client: client, Output: output})
			if runner.config != config {
				t.Error("expected config to be kept")
			}
			if runner.client != client {
				t.Error("expected client to be kept")
			}
			if runner.output != output {
				t.Error("expected output to be kept")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes pretty JSON with trailing newline", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `{"key":"value"}`) {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})
	})

	t.Run("renderEntries", func(t *testing.T) {
		entries := []services.Entry{
			{ID: 1, Name: "Am", Summary: "x 0 2 2 1 0"},
			{ID: 2, Name: "C"},
		}

		t.Run("plain table includes ids, names and count", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.renderEntries(entries, false, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			for _, want := range []string{"Am", "x 0 2 2 1 0", "C", "2 result(s)"} {
				if !strings.Contains(result, want) {
					t.Errorf("expected output to contain %q, got %s", want, result)
				}
			}
		})

		t.Run("empty listing prints a hint", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.renderEntries(nil, false, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "No results") {
				t.Errorf("expected empty hint, got %s", output.String())
			}
		})

		t.Run("json mode emits a decodable array", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.renderEntries(entries, true, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var decoded []services.Entry
			if err := json.Unmarshal(output.Bytes(), &decoded); err != nil {
				t.Fatalf("expected valid JSON, got %v", err)
			}
			if len(decoded) != 2 || decoded[0].Name != "Am" {
				t.Errorf("unexpected decoded entries: %+v", decoded)
			}
		})
	})

	t.Run("parseChordIDs", func(t *testing.T) {
		t.Run("parses a comma list", func(t *testing.T) {
			ids, err := parseChordIDs("1, 4,7")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(ids) != 3 || ids[1] != 4 {
				t.Errorf("unexpected ids: %v", ids)
			}
		})

		t.Run("empty input yields nil", func(t *testing.T) {
			ids, err := parseChordIDs("  ")
			if err != nil || ids != nil {
				t.Errorf("expected nil ids, got %v %v", ids, err)
			}
		})

		t.Run("rejects a non-numeric id", func(t *testing.T) {
			if _, err := parseChordIDs("1,two"); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})
}

func TestCommands(t *testing.T) {
	t.Run("auth status reports a logged-out session", func(t *testing.T) {
		runner, output := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no request for auth status")
		}))

		if err := runCommand(t, runner, "auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Not logged in") {
			t.Errorf("expected logged-out status, got %s", output.String())
		}
	})

	t.Run("chords list renders the backend listing", func(t *testing.T) {
		runner, output := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chords" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]models.Chord{
				{ID: 1, Name: "Am", Strings: []int{-1, 0, 2, 2, 1, 0}},
			})
		}))

		if err := runCommand(t, runner, "chords", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Am") {
			t.Errorf("expected chord name in output, got %s", output.String())
		}
	})

	t.Run("songs list rejects an unknown genre locally", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no request for an invalid genre")
		}))

		err := runCommand(t, runner, "songs", "list", "--genre", "polka")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("chords get rejects a non-numeric id", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no request for an invalid id")
		}))

		err := runCommand(t, runner, "chords", "get", "abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("login then saved listing carries the token", func(t *testing.T) {
		token := "header.payload.signature"
		runner, output := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/login":
				json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: token, TokenType: "bearer"})
			case "/chords/me/saved":
				if got := r.Header.Get("Authorization"); got != "Bearer "+token {
					t.Errorf("expected bearer header, got %q", got)
				}
				json.NewEncoder(w).Encode([]models.Chord{{ID: 2, Name: "C"}})
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))

		if err := runCommand(t, runner, "auth", "login", "-u", "alice", "-p", "Secret123"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if err := runCommand(t, runner, "chords", "saved"); err != nil {
			t.Fatalf("saved listing failed: %v", err)
		}
		if !strings.Contains(output.String(), "C") {
			t.Errorf("expected saved chord in output, got %s", output.String())
		}
	})

	t.Run("cache show rejects an unknown kind", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		err := runCommand(t, runner, "cache", "show", "albums")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("requests honor the configured timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() { close(release); server.Close() })

		config := shared.DefaultConfig()
		config.API.BaseURL = server.URL
		config.API.TimeoutSeconds = 1
		config.Storage.StateDir = t.TempDir()
		config.Database.Path = filepath.Join(t.TempDir(), "cache.db")

		runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}})
		t.Cleanup(func() { runner.Close() })

		start := time.Now()
		err := runCommand(t, runner, "chords", "list")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("expected the request to fail at the configured deadline, took %s", elapsed)
		}
	})

	t.Run("setup config", func(t *testing.T) {
		t.Run("writes overrides to disk", func(t *testing.T) {
			runner, output := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			path := filepath.Join(t.TempDir(), "config.toml")
			err := runCommand(t, runner, "setup", "config", "--config", path,
				"--base-url", "http://backend:9000", "--debounce-ms", "250")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Config written") {
				t.Errorf("expected confirmation, got %s", output.String())
			}

			loaded, err := shared.LoadConfig(path)
			if err != nil {
				t.Fatalf("expected a parseable config file, got %v", err)
			}
			if loaded.API.BaseURL != "http://backend:9000" {
				t.Errorf("expected base_url override, got %q", loaded.API.BaseURL)
			}
			if loaded.UI.DebounceMS != 250 {
				t.Errorf("expected debounce_ms override, got %d", loaded.UI.DebounceMS)
			}
			if want := shared.DefaultConfig().Database.Path; loaded.Database.Path != want {
				t.Errorf("expected untouched db path %q, got %q", want, loaded.Database.Path)
			}
		})

		t.Run("keeps earlier overrides on a second run", func(t *testing.T) {
			runner, _ := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			path := filepath.Join(t.TempDir(), "config.toml")
			if err := runCommand(t, runner, "setup", "config", "--config", path, "--base-url", "http://backend:9000"); err != nil {
				t.Fatal(err)
			}
			if err := runCommand(t, runner, "setup", "config", "--config", path, "--timeout-seconds", "5"); err != nil {
				t.Fatal(err)
			}

			loaded, err := shared.LoadConfig(path)
			if err != nil {
				t.Fatal(err)
			}
			if loaded.API.BaseURL != "http://backend:9000" {
				t.Errorf("expected base_url to survive, got %q", loaded.API.BaseURL)
			}
			if loaded.API.TimeoutSeconds != 5 {
				t.Errorf("expected timeout_seconds override, got %d", loaded.API.TimeoutSeconds)
			}
		})
	})

	t.Run("library export flushes progress before the summary", func(t *testing.T) {
		runner, output := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/chords/me/saved":
				json.NewEncoder(w).Encode([]models.Chord{{ID: 1, Name: "Am", Strings: []int{-1, 0, 2, 2, 1, 0}}})
			case "/songs/me/saved":
				json.NewEncoder(w).Encode([]models.Song{{ID: 3, Title: "Horse"}})
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))
		runner.client.SetToken("header.payload.signature")

		out := filepath.Join(t.TempDir(), "library.json")
		if err := runCommand(t, runner, "library", "export", "--output", out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		text := output.String()
		lastProgress := strings.LastIndex(text, "📥")
		summary := strings.Index(text, "✓ Export complete")
		if lastProgress == -1 || summary == -1 {
			t.Fatalf("expected progress lines and a summary, got:\n%s", text)
		}
		if lastProgress > summary {
			t.Errorf("expected every progress line before the summary, got:\n%s", text)
		}
	})

	t.Run("setup database creates the schema", func(t *testing.T) {
		runner, output := newTestRunner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		content := "[database]\npath = \"" + filepath.Join(dir, "cache.db") + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		if err := runCommand(t, runner, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Cache database ready") {
			t.Errorf("expected setup confirmation, got %s", output.String())
		}
	})
}
