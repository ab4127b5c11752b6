// Package runner invokes the Gradle profiling task with async-profiler
// attached and hands back the collapsed-stacks file it produces.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	// LibPathEnv overrides the async-profiler library location.
	LibPathEnv = "AP_LIB"
	// ProfileTask is the Gradle task that runs the benchmark under the profiler.
	ProfileTask = "profileBenchmark"
)

// DefaultLibPath returns the platform default location of the async-profiler
// library, used when AP_LIB is not set.
func DefaultLibPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home,
		"async-profiler", "async-profiler-3.0-macos", "lib", "libasyncProfiler.dylib")
}

// ResolveLibPath resolves the async-profiler library path from the
// environment override or the platform default.
func ResolveLibPath() string {
	if lib := os.Getenv(LibPathEnv); lib != "" {
		return lib
	}
	return DefaultLibPath()
}

// Config describes one profiling run.
type Config struct {
	// ProjectRoot is the Gradle project root; the build runs with this as
	// its working directory.
	ProjectRoot string
	// Event is the async-profiler event type, e.g. "cpu" or "alloc".
	Event string
	// LibPath is the async-profiler library to attach.
	LibPath string
}

// Gradlew is the wrapper script path for a config's project root.
func (c Config) Gradlew() string {
	return filepath.Join(c.ProjectRoot, "gradlew")
}

// OutputPath is where the build is expected to leave the collapsed stacks.
func (c Config) OutputPath() string {
	return filepath.Join(c.ProjectRoot, "app", "build", "benchmark", "profile.collapsed")
}

// ExitError carries a build subprocess's non-zero exit status so the caller
// can terminate with the same code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("build command exited with status %d", e.Code)
}

// Env abstracts the environmental side effects of a profiling run so the
// runner can be exercised without a filesystem or a subprocess.
type Env interface {
	// Stat reports whether a file exists at path.
	Stat(path string) error
	// Run executes a command in dir, inheriting standard output and error.
	// A non-zero exit status is reported as *ExitError.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// OSEnv is the real Env backed by the operating system.
type OSEnv struct{}

func (OSEnv) Stat(path string) error {
	_, err := os.Stat(path)
	return err
}

func (OSEnv) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return err
}

// Runner drives one external profiling run.
type Runner struct {
	cfg    Config
	env    Env
	out    io.Writer
	logger zerolog.Logger
}

// New creates a Runner. A nil env uses the real operating system; a nil out
// suppresses progress output.
func New(cfg Config, env Env, out io.Writer, logger zerolog.Logger) *Runner {
	if env == nil {
		env = OSEnv{}
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{cfg: cfg, env: env, out: out, logger: logger}
}

// Run triggers the Gradle profiling task and returns the path of the
// collapsed-stacks file it produced.
func (r *Runner) Run(ctx context.Context) (string, error) {
	lib := r.cfg.LibPath
	if lib == "" {
		lib = ResolveLibPath()
	}
	if err := r.env.Stat(lib); err != nil {
		r.logger.Error().Str("path", lib).Msg("async-profiler library not found")
		return "", fmt.Errorf("async-profiler not found at %s (set %s to override)", lib, LibPathEnv)
	}

	fmt.Fprintf(r.out, "=== Profiling (event=%s) ===\n", r.cfg.Event)
	fmt.Fprintf(r.out, "async-profiler: %s\n\n", lib)

	err := r.env.Run(ctx, r.cfg.ProjectRoot, r.cfg.Gradlew(),
		"-p", r.cfg.ProjectRoot,
		ProfileTask,
		"-PasyncProfilerLib="+lib,
		"-PprofileEvent="+r.cfg.Event,
	)
	if err != nil {
		return "", fmt.Errorf("profiling build failed: %w", err)
	}

	output := r.cfg.OutputPath()
	if err := r.env.Stat(output); err != nil {
		r.logger.Error().Str("path", output).Msg("profiler output missing after build")
		return "", fmt.Errorf("expected profiler output at %s", output)
	}
	return output, nil
}
