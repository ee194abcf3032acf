package main

import (
	"testing"
	"time"

	"github.com/atomicstack/stmux/internal/app"
	"github.com/atomicstack/stmux/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			SocketPath:    "socket-path",
			SessionsFile:  "/cfg/sessions.toml",
			SettleDelay:   300 * time.Millisecond,
			LayoutTimeout: time.Second,
			Verbose:       true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "/cfg/config.yml",
		Flags: map[string]string{
			"socket":        "socket-path",
			"sessionsFile":  "/cfg/sessions.toml",
			"settleDelay":   "300ms",
			"layoutTimeout": "1s",
			"verbose":       "true",
		},
		Args: []string{"sessions", "restore"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["sessionsFile"] != "/cfg/sessions.toml" {
		t.Fatalf("expected sessions file, got %v", flagsValue["sessionsFile"])
	}
	if flagsValue["settleDelay"] != "300ms" {
		t.Fatalf("expected settle delay 300ms, got %v", flagsValue["settleDelay"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	command, ok := payload["command"].([]string)
	if !ok || len(command) != 2 || command[0] != "sessions" {
		t.Fatalf("expected command words in payload, got %v", payload["command"])
	}
	if payload["configFile"] != "/cfg/config.yml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
