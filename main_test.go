package main

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestReadInputStdin(t *testing.T) {
	got, err := readInput("-", strings.NewReader("1\t2\n"))
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "1\t2\n" {
		t.Errorf("Unexpected input %q", got)
	}
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	if err := os.WriteFile(path, []byte("3\t4"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := readInput(path, nil)
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "3\t4" {
		t.Errorf("Unexpected input %q", got)
	}

	if _, err := readInput(filepath.Join(t.TempDir(), "missing.tsv"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFindAvailablePortSkipsBusy(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer busy.Close()

	start := busy.Addr().(*net.TCPAddr).Port
	got, err := findAvailablePort(start, 10)
	if err != nil {
		t.Fatalf("findAvailablePort failed: %v", err)
	}
	if got == start {
		t.Errorf("Expected a port other than the busy %d", start)
	}
}

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&port, "port", 0, "")
	cmd.Flags().StringVar(&samplesDir, "samples-dir", "", "")
	cmd.Flags().BoolVar(&headless, "headless", false, "")
	return cmd
}

func TestLoadConfigFlagOverridesInvalidEnv(t *testing.T) {
	configFile = ""
	t.Setenv("RFRADAR_PORT", "0")

	cmd := newFlagCommand()
	if err := cmd.Flags().Set("port", "8080"); err != nil {
		t.Fatalf("set flag failed: %v", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
}

func TestLoadConfigRejectsInvalidPort(t *testing.T) {
	configFile = ""
	t.Setenv("RFRADAR_PORT", "0")

	if _, err := loadConfig(newFlagCommand()); err == nil {
		t.Error("Expected error for port 0 without a flag override")
	}
}

func TestRenderFlags(t *testing.T) {
	render, _, err := newRootCmd().Find([]string{"render"})
	if err != nil {
		t.Fatalf("render command not found: %v", err)
	}
	for _, name := range []string{"png", "xlsx", "height", "png-width", "png-height"} {
		if render.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on render", name)
		}
	}
	if render.Flags().Lookup("width") != nil {
		t.Error("Unexpected --width flag on render")
	}
}
