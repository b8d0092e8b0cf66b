package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daytodo/internal/board"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"DAYTODO_BACKEND", "DAYTODO_STORE_PATH", "DAYTODO_LOG_FILE", "DAYTODO_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "backend = \"file\"\nstore_path = \"tasks.json\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListToggleDelete(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := run(t, cfg, "add", "5", "buy", "milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "day 5 #1 buy milk") {
		t.Fatalf("add output=%q", out)
	}

	if _, err := run(t, cfg, "add", "5", "Buy Milk"); !errors.Is(err, board.ErrDuplicateTask) {
		t.Fatalf("duplicate add err=%v, want ErrDuplicateTask", err)
	}
	if _, err := run(t, cfg, "add", "5", "walk dog"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err = run(t, cfg, "toggle", "5", "1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !strings.Contains(out, "completed") {
		t.Fatalf("toggle output=%q", out)
	}

	out, err = run(t, cfg, "list", "5")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Day 5", "1. [x] buy milk", "2. [ ] walk dog"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, cfg, "delete", "5", "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, err = run(t, cfg, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := strings.TrimSpace(out); got != `{"5":[{"text":"walk dog","completed":false}]}` {
		t.Fatalf("export=%s", got)
	}
}

func TestAddBlankTextIsIgnored(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := run(t, cfg, "add", "5", "   ")
	if err != nil {
		t.Fatalf("blank add: %v", err)
	}
	if out != "" {
		t.Fatalf("blank add output=%q, want none", out)
	}
	out, err = run(t, cfg, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := strings.TrimSpace(out); got != "{}" {
		t.Fatalf("export=%s, want {}", got)
	}
}

func TestListAllDays(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := run(t, cfg, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No tasks yet.") {
		t.Fatalf("empty list output=%q", out)
	}
	for _, args := range [][]string{{"add", "12", "b"}, {"add", "3", "a"}} {
		if _, err := run(t, cfg, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	out, err = run(t, cfg, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if i, j := strings.Index(out, "Day 3"), strings.Index(out, "Day 12"); i < 0 || j < 0 || i > j {
		t.Fatalf("days not listed in order:\n%s", out)
	}
}

func TestArgumentValidation(t *testing.T) {
	cfg := writeTestConfig(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "day zero", args: []string{"add", "0", "x"}},
		{name: "day 32", args: []string{"list", "32"}},
		{name: "day not a number", args: []string{"add", "five", "x"}},
		{name: "ordinal zero", args: []string{"toggle", "5", "0"}},
		{name: "missing task", args: []string{"delete", "5", "1"}},
		{name: "missing text", args: []string{"add", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, cfg, tt.args...); err == nil {
				t.Fatalf("%v: expected error", tt.args)
			}
		})
	}
}

func TestParseOrdinal(t *testing.T) {
	idx, err := parseOrdinal("3")
	if err != nil || idx != 2 {
		t.Fatalf("parseOrdinal(3)=%d,%v", idx, err)
	}
	if _, err := parseOrdinal("-1"); err == nil {
		t.Fatal("expected error for negative ordinal")
	}
}
