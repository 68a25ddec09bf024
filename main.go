package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/popstack/internal/app"
	"github.com/atomicstack/popstack/internal/config"
	"github.com/atomicstack/popstack/internal/logging"
	"github.com/atomicstack/popstack/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("popstack needs a terminal on stdout")

func main() {
	os.Exit(run(os.Args[1:], os.Environ()))
}

// run loads configuration, starts the program and returns the exit code.
func run(args, environ []string) int {
	runtimeCfg, err := config.LoadArgs(args, environ)
	if err == nil {
		err = config.Validate(runtimeCfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	payload := startupTracePayload(runtimeCfg)
	events.App.Start(payload)

	if tty := payload["tty"].(ttyDetails); !tty.hasTerminal("stdout") {
		return fail(errNoTerminal)
	}
	if err := app.Run(runtimeCfg.App); err != nil {
		return fail(err)
	}
	events.App.Exit(0, nil)
	return 0
}

func fail(err error) int {
	logging.Error(err)
	events.App.Exit(1, err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

func (d ttyDetails) hasTerminal(name string) bool {
	for _, p := range d.Probes {
		if p.Name == name {
			return p.IsTerminal
		}
	}
	return false
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
