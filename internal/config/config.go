package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/popstack/internal/app"
	"github.com/atomicstack/popstack/internal/popup"
	"github.com/atomicstack/popstack/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	FilePath string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig        = "POPSTACK_CONFIG"
	envTheme         = "POPSTACK_THEME"
	envHeaderTheme   = "POPSTACK_HEADER_THEME"
	envStack         = "POPSTACK_STACK"
	envScroll        = "POPSTACK_SCROLL_DELAY"
	envResize        = "POPSTACK_RESIZE_DELAY"
	envOrientation   = "POPSTACK_ORIENTATION_DELAY"
	envKeyboard      = "POPSTACK_KEYBOARD_DELAY"
	envDrag          = "POPSTACK_DRAG_THROTTLE"
	envNotifyTimeout = "POPSTACK_NOTIFY_TIMEOUT"
	envWork          = "POPSTACK_WORK"
	envWidth         = "POPSTACK_WIDTH"
	envHeight        = "POPSTACK_HEIGHT"
	envStatus        = "POPSTACK_STATUS"
	envTrace         = "POPSTACK_TRACE"
	envLogFile       = "POPSTACK_LOG_FILE"
)

const (
	defaultNotifyTimeout = 4 * time.Second
	defaultWork          = 3 * time.Second
)

// Load parses configuration from CLI arguments, environment variables and
// the optional TOML file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// flag first, then environment, then file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	delays := popup.DefaultDelays()

	fs := flag.NewFlagSet("popstack", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfig, ""), "path to a TOML configuration file")
	themeName := fs.String("theme", theme.DefaultName, "colour theme for popups")
	headerTheme := fs.String("header-theme", "", "colour theme for popup title bars (defaults to -theme)")
	stack := fs.String("stack", popup.StackRight, "side stack panels open on (left or right)")
	scroll := fs.Duration("scroll-delay", delays.Scroll, "debounce before repositioning after page scroll")
	resize := fs.Duration("resize-delay", delays.Resize, "debounce before repositioning after terminal resize")
	orientation := fs.Duration("orientation-delay", delays.Orientation, "delay before recalculating after an orientation change")
	keyboard := fs.Duration("keyboard-delay", delays.Keyboard, "delay before recalculating after the keyboard shows")
	drag := fs.Duration("drag-throttle", delays.DragThrottle, "minimum interval between page drag notifications")
	notify := fs.Duration("notify-timeout", defaultNotifyTimeout, "how long notifications stay open (0 keeps them)")
	work := fs.Duration("work", defaultWork, "duration of the demo pending operation")
	width := fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	status := fs.Bool("status", false, "show the popup status table on the page")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	logFile := fs.String("log-file", "", "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	file, err := loadFile(*configPath)
	if err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	r := resolver{set: set, env: env}
	cfg := Config{
		App: app.Config{
			Theme:         r.str("theme", *themeName, envTheme, file.Theme),
			HeaderTheme:   r.str("header-theme", *headerTheme, envHeaderTheme, file.HeaderTheme),
			StackPosition: r.str("stack", *stack, envStack, file.Stack),
			Delays: popup.Delays{
				Scroll:       r.dur("scroll-delay", *scroll, envScroll, file.Delays.Scroll),
				Resize:       r.dur("resize-delay", *resize, envResize, file.Delays.Resize),
				Orientation:  r.dur("orientation-delay", *orientation, envOrientation, file.Delays.Orientation),
				Keyboard:     r.dur("keyboard-delay", *keyboard, envKeyboard, file.Delays.Keyboard),
				DragThrottle: r.dur("drag-throttle", *drag, envDrag, file.Delays.Drag),
			},
			NotifyTimeout: r.dur("notify-timeout", *notify, envNotifyTimeout, file.NotifyTimeout),
			WorkDuration:  r.dur("work", *work, envWork, file.Work),
			Width:         r.int("width", *width, envWidth, file.Width),
			Height:        r.int("height", *height, envHeight, file.Height),
			ShowStatus:    r.bool("status", *status, envStatus, file.Status),
		},
		Logging: Logging{
			FilePath: r.str("log-file", *logFile, envLogFile, file.Logging.File),
			Trace:    r.bool("trace", *trace, envTrace, file.Logging.Trace),
		},
		FilePath: *configPath,
		Args:     append([]string(nil), args...),
	}
	cfg.Flags = map[string]string{
		"config":        cfg.FilePath,
		"theme":         cfg.App.Theme,
		"headerTheme":   cfg.App.HeaderTheme,
		"stack":         cfg.App.StackPosition,
		"notifyTimeout": cfg.App.NotifyTimeout.String(),
		"work":          cfg.App.WorkDuration.String(),
		"width":         strconv.Itoa(cfg.App.Width),
		"height":        strconv.Itoa(cfg.App.Height),
		"status":        strconv.FormatBool(cfg.App.ShowStatus),
		"trace":         strconv.FormatBool(cfg.Logging.Trace),
		"logFile":       cfg.Logging.FilePath,
	}

	return cfg, nil
}

// fileConfig mirrors the TOML file. Pointer fields distinguish an absent key
// from a zero value.
type fileConfig struct {
	Theme         *string    `toml:"theme"`
	HeaderTheme   *string    `toml:"header_theme"`
	Stack         *string    `toml:"stack"`
	NotifyTimeout *Duration  `toml:"notify_timeout"`
	Work          *Duration  `toml:"work"`
	Width         *int       `toml:"width"`
	Height        *int       `toml:"height"`
	Status        *bool      `toml:"status"`
	Delays        fileDelays `toml:"delays"`
	Logging       fileLog    `toml:"logging"`
}

type fileDelays struct {
	Scroll      *Duration `toml:"scroll"`
	Resize      *Duration `toml:"resize"`
	Orientation *Duration `toml:"orientation"`
	Keyboard    *Duration `toml:"keyboard"`
	Drag        *Duration `toml:"drag"`
}

type fileLog struct {
	File  *string `toml:"file"`
	Trace *bool   `toml:"trace"`
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fc, fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// Duration is a time.Duration that can be unmarshaled from strings like "250ms"
// or "4s". Bare integers are read as milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '250ms', '4s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// resolver picks the winning value for one option.
type resolver struct {
	set map[string]bool
	env map[string]string
}

func (r resolver) str(name, flagValue, key string, file *string) string {
	if r.set[name] {
		return flagValue
	}
	if v, ok := r.env[key]; ok {
		return v
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func (r resolver) dur(name string, flagValue time.Duration, key string, file *Duration) time.Duration {
	if r.set[name] {
		return flagValue
	}
	if v, ok := r.env[key]; ok && strings.TrimSpace(v) != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err == nil {
			return d.Duration()
		}
	}
	if file != nil {
		return file.Duration()
	}
	return flagValue
}

func (r resolver) int(name string, flagValue int, key string, file *int) int {
	if r.set[name] {
		return flagValue
	}
	if parsed, ok := envInt(r.env, key); ok {
		return parsed
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func (r resolver) bool(name string, flagValue bool, key string, file *bool) bool {
	if r.set[name] {
		return flagValue
	}
	if parsed, ok := envBool(r.env, key); ok {
		return parsed
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envInt(env map[string]string, key string) (int, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envBool(env map[string]string, key string) (bool, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return parsed, true
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the popup layer cannot work with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.StackPosition != popup.StackLeft && a.StackPosition != popup.StackRight {
		return fmt.Errorf("stack must be %q or %q (got %q)", popup.StackLeft, popup.StackRight, a.StackPosition)
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"scroll-delay", a.Delays.Scroll},
		{"resize-delay", a.Delays.Resize},
		{"orientation-delay", a.Delays.Orientation},
		{"keyboard-delay", a.Delays.Keyboard},
		{"drag-throttle", a.Delays.DragThrottle},
		{"notify-timeout", a.NotifyTimeout},
		{"work", a.WorkDuration},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%s must be >= 0 (got %s)", d.name, d.value)
		}
	}
	return nil
}
