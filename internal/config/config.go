package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/stmux/internal/app"
	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/workspace"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// Dir is the stmux configuration directory.
	Dir string
	// File is the YAML file that was consulted, if any.
	File  string
	Flags map[string]string
	// Args holds the command words following the global flags.
	Args []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfigFile    = "STMUX_CONFIG"
	envSocketPath    = "STMUX_SOCKET"
	envSessionsFile  = "STMUX_SESSIONS_FILE"
	envRecentFile    = "STMUX_RECENT_FILE"
	envBookmarksFile = "STMUX_BOOKMARKS_FILE"
	envSettleDelay   = "STMUX_SETTLE_DELAY"
	envLayoutTimeout = "STMUX_LAYOUT_TIMEOUT"
	envFinder        = "STMUX_FINDER"
	envEditor        = "EDITOR"
	envVerbose       = "STMUX_VERBOSE"
	envTrace         = "STMUX_TRACE"
	envLogFile       = "STMUX_LOG_FILE"
)

// fileConfig is the shape of the optional config.yml.
type fileConfig struct {
	Socket        string `yaml:"socket"`
	SessionsFile  string `yaml:"sessions_file"`
	RecentFile    string `yaml:"recent_file"`
	BookmarksFile string `yaml:"bookmarks_file"`
	SettleDelay   string `yaml:"settle_delay"`
	LayoutTimeout string `yaml:"layout_timeout"`
	Finder        string `yaml:"finder"`
	Editor        string `yaml:"editor"`
	LogFile       string `yaml:"log_file"`
	Trace         *bool  `yaml:"trace"`
	Verbose       *bool  `yaml:"verbose"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Global flags
// must precede the command words, which are returned in Config.Args.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	dir, err := configDir(env)
	if err != nil {
		return Config{}, err
	}
	home := homeDir(env)

	filePath := envOrDefault(env, envConfigFile, filepath.Join(dir, "config.yml"))
	file, err := readFile(filePath)
	if err != nil {
		return Config{}, err
	}

	defaults := fileConfig{
		SessionsFile:  filepath.Join(dir, "sessions.toml"),
		RecentFile:    filepath.Join(home, ".tmux_recent"),
		BookmarksFile: filepath.Join(home, ".tmux_bookmarks"),
		Finder:        "fzf --reverse --no-sort",
		Editor:        "vi",
		LogFile:       filepath.Join(dir, "stmux.log"),
	}
	layer := overlay(defaults, file, home)

	settleDefault, err := parseDuration("settle_delay", layer.SettleDelay, workspace.DefaultSettleDelay)
	if err != nil {
		return Config{}, err
	}
	timeoutDefault, err := parseDuration("layout_timeout", layer.LayoutTimeout, workspace.DefaultLayoutTimeout)
	if err != nil {
		return Config{}, err
	}

	fs := pflag.NewFlagSet("stmux", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SetInterspersed(false)

	socket := fs.String("socket", envOrDefault(env, envSocketPath, layer.Socket), "path to the tmux socket (overrides environment detection)")
	sessionsFile := fs.String("sessions-file", envOrDefault(env, envSessionsFile, layer.SessionsFile), "stored session topology file")
	recentFile := fs.String("recent-file", envOrDefault(env, envRecentFile, layer.RecentFile), "recently used session list")
	bookmarksFile := fs.String("bookmarks-file", envOrDefault(env, envBookmarksFile, layer.BookmarksFile), "bookmarked session list")
	settle := fs.Duration("settle-delay", envOrDuration(env, envSettleDelay, settleDefault), "fallback delay before applying layouts")
	timeout := fs.Duration("layout-timeout", envOrDuration(env, envLayoutTimeout, timeoutDefault), "how long to wait for panes before applying layouts")
	finder := fs.String("finder", envOrDefault(env, envFinder, layer.Finder), "fuzzy finder command run inside the picker popup")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolValue(file.Trace, false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, boolValue(file.Verbose, false)), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, layer.LogFile), "path to the log file")
	help := fs.BoolP("help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *settle < 0 {
		return Config{}, fmt.Errorf("settle-delay must be >= 0 (got %s)", *settle)
	}
	if *timeout < 0 {
		return Config{}, fmt.Errorf("layout-timeout must be >= 0 (got %s)", *timeout)
	}

	rest := append([]string(nil), fs.Args()...)
	if *help {
		rest = append(rest, "--help")
	}

	cfg := Config{
		App: app.Config{
			SocketPath:    *socket,
			SessionsFile:  *sessionsFile,
			RecentFile:    *recentFile,
			BookmarksFile: *bookmarksFile,
			SettleDelay:   *settle,
			LayoutTimeout: *timeout,
			Finder:        *finder,
			Editor:        envOrDefault(env, envEditor, layer.Editor),
			Verbose:       *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Dir:  dir,
		File: filePath,
		Flags: map[string]string{
			"socket":        *socket,
			"sessionsFile":  *sessionsFile,
			"recentFile":    *recentFile,
			"bookmarksFile": *bookmarksFile,
			"settleDelay":   settle.String(),
			"layoutTimeout": timeout.String(),
			"finder":        *finder,
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
		},
		Args: rest,
	}

	return cfg, nil
}

// configDir resolves $XDG_CONFIG_HOME/stmux, falling back to ~/.config/stmux.
func configDir(env map[string]string) (string, error) {
	if xdg := strings.TrimSpace(env["XDG_CONFIG_HOME"]); xdg != "" {
		return filepath.Join(xdg, "stmux"), nil
	}
	home := homeDir(env)
	if home == "" {
		return "", stmuxerrors.ConfigDir("~/.config/stmux", errors.New("home directory not set"))
	}
	return filepath.Join(home, ".config", "stmux"), nil
}

func homeDir(env map[string]string) string {
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}

// readFile decodes path; a missing file yields the zero configuration.
func readFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, stmuxerrors.FileIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, stmuxerrors.Wrap(err, stmuxerrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse %s", path)).
			WithDetail("path", path)
	}
	return cfg, nil
}

// overlay returns base with every non-empty string of top applied.
func overlay(base, top fileConfig, home string) fileConfig {
	pick := func(b, t string) string {
		if strings.TrimSpace(t) != "" {
			return expandHome(t, home)
		}
		return b
	}
	base.Socket = pick(base.Socket, top.Socket)
	base.SessionsFile = pick(base.SessionsFile, top.SessionsFile)
	base.RecentFile = pick(base.RecentFile, top.RecentFile)
	base.BookmarksFile = pick(base.BookmarksFile, top.BookmarksFile)
	base.SettleDelay = pick(base.SettleDelay, top.SettleDelay)
	base.LayoutTimeout = pick(base.LayoutTimeout, top.LayoutTimeout)
	base.Finder = pick(base.Finder, top.Finder)
	base.Editor = pick(base.Editor, top.Editor)
	base.LogFile = pick(base.LogFile, top.LogFile)
	return base
}

func expandHome(value, home string) string {
	if !strings.HasPrefix(value, "~/") || home == "" {
		return value
	}
	return filepath.Join(home, value[2:])
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, stmuxerrors.Wrap(err, stmuxerrors.ErrCodeConfigInvalid, fmt.Sprintf("invalid %s %q", key, value))
	}
	return d, nil
}

func boolValue(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
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
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
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

// Validate creates the configuration directory and the directory holding
// the sessions file.
func Validate(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return stmuxerrors.ConfigDir(cfg.Dir, err)
	}
	if dir := filepath.Dir(cfg.App.SessionsFile); dir != "" && dir != cfg.Dir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stmuxerrors.ConfigDir(dir, err)
		}
	}
	return nil
}
