//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestServerStartStop starts stc serve against a descriptor directory,
// exercises the API and checks the graceful shutdown.
func TestServerStartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	descriptors := filepath.Join(tmpDir, "resources")
	if err := os.Mkdir(descriptors, 0o755); err != nil {
		t.Fatalf("failed to create descriptor dir: %v", err)
	}
	writeTestFile(t, filepath.Join(descriptors, "m81.stcs"), "Circle ICRS 148.9 69.07 0.2")
	writeTestFile(t, filepath.Join(descriptors, "m81.yaml"), "title: Bode's Galaxy\n")

	dbPath := filepath.Join(tmpDir, "journal.db")
	configFile := filepath.Join(tmpDir, "config.yaml")
	writeTestFile(t, configFile, fmt.Sprintf(`
server:
  listen_address: "127.0.0.1:18090"

descriptors:
  dir: %q

journal:
  enabled: true
  driver: "sqlite"
  path: %q

telemetry:
  logging:
    level: "warn"
    format: "json"
  metrics:
    enabled: true
  tracing:
    enabled: false
`, descriptors, dbPath))

	binaryPath := buildSTCBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "serve", "--config", configFile)
	cmd.Dir = tmpDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	base := "http://127.0.0.1:18090"
	if !waitForHealthy(base+"/ready", 10*time.Second) {
		t.Fatalf("server failed to start\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	status, body := post(t, base+"/v1/resprof", "Circle FK5 J2000 10 20 1.5")
	if status != http.StatusOK || !strings.Contains(body, "<STCResourceProfile") {
		t.Errorf("resprof = %d %q", status, body)
	}

	status, body = post(t, base+"/v1/conform", `{"source":"Position ICRS 12 34","target":"Position GALACTIC"}`)
	if status != http.StatusOK || !strings.HasPrefix(body, "Position GALACTIC 122.11") {
		t.Errorf("conform = %d %q", status, body)
	}

	status, body = post(t, base+"/v1/resources/m81/conform", "Position GALACTIC")
	if status != http.StatusOK || !strings.HasPrefix(body, "Circle GALACTIC") {
		t.Errorf("resource conform = %d %q", status, body)
	}

	status, body = post(t, base+"/v1/resprof", "Nonsense 1 2")
	if status != http.StatusBadRequest || !strings.Contains(body, `"kind":"parse"`) {
		t.Errorf("malformed resprof = %d %q", status, body)
	}

	resp, err := http.Get(base + "/v1/resources")
	if err != nil {
		t.Fatalf("list resources failed: %v", err)
	}
	var list struct {
		Resources []struct {
			ID string `json:"id"`
		} `json:"resources"`
	}
	err = json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to decode resource list: %v", err)
	}
	if len(list.Resources) != 1 || list.Resources[0].ID != "m81" {
		t.Errorf("resources = %+v, want m81", list.Resources)
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Errorf("failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected shutdown error: %v\nStderr: %s", err, stderr.String())
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down within 10 seconds")
	}

	// The journal survives the server.
	query := exec.Command(binaryPath, "journal", "query", "--config", configFile, "--output", "json")
	output, err := query.Output()
	if err != nil {
		t.Fatalf("journal query failed: %v\nOutput: %s", err, output)
	}
	var records []map[string]any
	if err := json.Unmarshal(output, &records); err != nil {
		t.Fatalf("failed to parse journal output: %v\nOutput: %s", err, output)
	}
	if len(records) != 4 {
		t.Errorf("journal has %d records, want 4", len(records))
	}
}

// TestVerbExitStatus runs the verbs as a user would.
func TestVerbExitStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildSTCBinary(t)

	tests := []struct {
		name   string
		args   []string
		stdin  string
		status int
		stdout string
	}{
		{"resprof", []string{"resprof", "Position ICRS 1 2"}, "", 0, "<STCResourceProfile"},
		{"resprof stdin", []string{"resprof"}, "Position GALACTIC", 0, "<GALACTIC_II"},
		{"conform", []string{"conform", "Position ICRS 12 34", "Position GALACTIC"}, "", 0, "Position GALACTIC 122.11"},
		{"help", []string{"help"}, "", 0, "resprof <stc-s>"},
		{"malformed", []string{"resprof", "Nonsense"}, "", 2, ""},
		{"bad xml", []string{"parsex"}, "<STCSpec", 2, ""},
		{"unsupported", []string{"conform", "Position ICRS CARTESIAN3 1 2 3", "Position GALACTIC"}, "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			cmd.Stdin = strings.NewReader(tt.stdin)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			err := cmd.Run()
			status := 0
			if exitErr, ok := err.(*exec.ExitError); ok {
				status = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if status != tt.status {
				t.Errorf("exit status = %d, want %d\nStderr: %s", status, tt.status, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.stdout)
			}
			if tt.status != 0 && !strings.HasPrefix(stderr.String(), "stc: ") {
				t.Errorf("stderr = %q, want a diagnostic", stderr.String())
			}
		})
	}
}

// TestCommandVersionOutput tests the version command
func TestCommandVersionOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildSTCBinary(t)

	output, err := exec.Command(binaryPath, "version").CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\nOutput: %s", err, output)
	}
	if !bytes.HasPrefix(output, []byte("stc ")) {
		t.Errorf("version output should start with 'stc ', got: %s", output)
	}
}

// TestDryRunValidation tests config validation with --dry-run
func TestDryRunValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	binaryPath := buildSTCBinary(t)

	t.Run("valid config", func(t *testing.T) {
		configFile := filepath.Join(tmpDir, "valid-config.yaml")
		writeTestFile(t, configFile, `
server:
  listen_address: "127.0.0.1:18091"
journal:
  enabled: false
`)
		output, err := exec.Command(binaryPath, "serve", "--config", configFile, "--dry-run").CombinedOutput()
		if err != nil {
			t.Errorf("dry-run should succeed with valid config: %v\nOutput: %s", err, output)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		configFile := filepath.Join(tmpDir, "invalid-config.yaml")
		writeTestFile(t, configFile, `
journal:
  driver: "postgres"
`)
		output, err := exec.Command(binaryPath, "serve", "--config", configFile, "--dry-run").CombinedOutput()
		if err == nil {
			t.Errorf("dry-run should fail with invalid config\nOutput: %s", output)
		}
	})
}

// Helper functions

// buildSTCBinary builds the stc binary for testing
func buildSTCBinary(t *testing.T) string {
	t.Helper()

	binaryPath := "../bin/stc"
	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	t.Log("Building stc binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/stc")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build stc: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

// waitForHealthy waits for a health endpoint to return 200
func waitForHealthy(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()

	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, string(data)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}
