package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popstack/internal/popup"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "popstack.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Theme != "default" || cfg.App.StackPosition != popup.StackRight {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if cfg.App.Delays != popup.DefaultDelays() {
		t.Fatalf("expected default delays, got %+v", cfg.App.Delays)
	}
	if cfg.App.NotifyTimeout != 4*time.Second || cfg.App.WorkDuration != 3*time.Second {
		t.Fatalf("unexpected timeouts %+v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{"-theme", "contrast", "-stack", "left", "-scroll-delay", "25ms", "-width", "100", "-status", "-trace", "-log-file", "/tmp/p.log"}
	cfg, err := LoadArgs(args, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Theme != "contrast" || cfg.App.StackPosition != popup.StackLeft {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if cfg.App.Delays.Scroll != 25*time.Millisecond || cfg.App.Delays.Resize != 10*time.Millisecond {
		t.Fatalf("unexpected delays %+v", cfg.App.Delays)
	}
	if cfg.App.Width != 100 || !cfg.App.ShowStatus {
		t.Fatalf("unexpected size/status %+v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/p.log" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Flags["stack"] != "left" || cfg.Flags["width"] != "100" {
		t.Fatalf("unexpected flags map %+v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args to be preserved")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
theme = "contrast"
stack = "left"
notify_timeout = "10s"
height = 30

[delays]
keyboard = "500"

[logging]
trace = true
`)
	env := []string{
		"POPSTACK_CONFIG=" + path,
		"POPSTACK_STACK=right",
		"POPSTACK_HEIGHT=40",
		"POPSTACK_TRACE=garbage",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.FilePath != path {
		t.Fatalf("expected config path from environment")
	}
	if cfg.App.Theme != "contrast" {
		t.Fatalf("expected theme from file, got %q", cfg.App.Theme)
	}
	if cfg.App.StackPosition != popup.StackRight || cfg.App.Height != 40 {
		t.Fatalf("expected environment to win over file, got %+v", cfg.App)
	}
	if cfg.App.NotifyTimeout != 10*time.Second || cfg.App.Delays.Keyboard != 500*time.Millisecond {
		t.Fatalf("expected durations from file, got %+v", cfg.App)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("an unparsable environment value must fall through to the file")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := []string{"POPSTACK_THEME=contrast", "POPSTACK_WORK=1s", "POPSTACK_STATUS=true"}
	cfg, err := LoadArgs([]string{"-theme", "default", "-status=false"}, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Theme != "default" || cfg.App.ShowStatus {
		t.Fatalf("expected flags to win, got %+v", cfg.App)
	}
	if cfg.App.WorkDuration != time.Second {
		t.Fatalf("expected work duration from environment, got %s", cfg.App.WorkDuration)
	}
}

func TestExplicitZeroInFileIsKept(t *testing.T) {
	path := writeConfig(t, "notify_timeout = \"0\"\n")
	cfg, err := LoadArgs([]string{"-config", path}, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.NotifyTimeout != 0 {
		t.Fatalf("expected notifications to stay open, got %s", cfg.App.NotifyTimeout)
	}
}

func TestLoadArgsRejectsUnknownFileKeys(t *testing.T) {
	path := writeConfig(t, "themes = \"contrast\"\n")
	if _, err := LoadArgs([]string{"-config", path}, nil); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected an unknown key error, got %v", err)
	}
}

func TestLoadArgsReportsBadFiles(t *testing.T) {
	if _, err := LoadArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, nil); err == nil {
		t.Fatalf("expected missing file error")
	}
	path := writeConfig(t, "[delays]\nscroll = \"soon\"\n")
	if _, err := LoadArgs([]string{"-config", path}, nil); err == nil {
		t.Fatalf("expected invalid duration error")
	}
}

func TestLoadArgsRejectsBadFlags(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "wide"}, nil); err == nil {
		t.Fatalf("expected flag parse error")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	cases := map[string]func(*Config){
		"stack":  func(c *Config) { c.App.StackPosition = "top" },
		"width":  func(c *Config) { c.App.Width = -1 },
		"height": func(c *Config) { c.App.Height = -3 },
		"delay":  func(c *Config) { c.App.Delays.Orientation = -time.Millisecond },
		"notify": func(c *Config) { c.App.NotifyTimeout = -time.Second },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1500")); err != nil || d.Duration() != 1500*time.Millisecond {
		t.Fatalf("expected milliseconds, got %s (%v)", d.Duration(), err)
	}
	if err := d.UnmarshalText([]byte("2m")); err != nil || d.Duration() != 2*time.Minute {
		t.Fatalf("expected duration string, got %s (%v)", d.Duration(), err)
	}
	out, err := d.MarshalText()
	if err != nil || string(out) != "2m0s" {
		t.Fatalf("unexpected marshal %q (%v)", out, err)
	}
	if err := d.UnmarshalText([]byte("later")); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
