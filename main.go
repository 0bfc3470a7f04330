// Copyright
// SPDX-License-Identifier: MIT
// flashdigest: terminal client for the Flash Digest summarize/transcribe backend
package main

import (
    "context"
    "errors"
    "fmt"
    "io"
    "os"
    "strings"
    "time"

    "github.com/atotto/clipboard"
    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"

    "flashdigest/internal/backend"
    "flashdigest/internal/config"
    "flashdigest/internal/logging"
    "flashdigest/internal/proc"
    "flashdigest/internal/tui"
    "flashdigest/internal/tui/state"
)

const Version = "0.3.0"

// flags shared by every command; zero values mean "not set".
type globalFlags struct {
    configPath string
    backendURL string
    timeout    time.Duration
    mode       string
    noColor    bool
    logLevel   string
    logFile    string
}

// app is what each command needs once config is resolved.
type app struct {
    cfg    *config.Config
    log    *logrus.Logger
    closer io.Closer
    client *backend.Client
    sup    *proc.Supervisor
}

func main() {
    if err := newRootCmd().Execute(); err != nil {
        fmt.Fprintf(os.Stderr, "Error: %v\n", err)
        os.Exit(1)
    }
}

func newRootCmd() *cobra.Command {
    gf := &globalFlags{}
    root := &cobra.Command{
        Use:   "flashdigest",
        Short: "Summarize or transcribe news URLs through the Flash Digest backend",
        Long: `Flash Digest sends a news URL to the processing backend and shows the
summary or transcript it returns, keeping a history of results for the session.

Run without arguments to start the interactive TUI.

Examples:
  flashdigest                                    # Start the TUI
  flashdigest process https://example.com/news   # One-shot summary
  flashdigest process -m transcribe URL --copy   # Transcribe and copy to clipboard
  flashdigest doctor                             # Check the backend is reachable`,
        Version:       Version,
        Args:          cobra.NoArgs,
        SilenceUsage:  true,
        SilenceErrors: true,
        RunE: func(cmd *cobra.Command, args []string) error {
            return runTUI(gf)
        },
    }
    pf := root.PersistentFlags()
    pf.StringVarP(&gf.configPath, "config", "c", config.DefaultConfigPath(), "config file (YAML)")
    pf.StringVar(&gf.backendURL, "backend", "", "backend base URL (default http://localhost:8002)")
    pf.DurationVar(&gf.timeout, "timeout", 0, "backend request timeout (default 2m)")
    pf.StringVarP(&gf.mode, "mode", "m", "", "summarize | transcribe")
    pf.BoolVar(&gf.noColor, "no-color", false, "disable colors (NO_COLOR is honored too)")
    pf.StringVar(&gf.logLevel, "log-level", "", "debug | info | warn | error")
    pf.StringVar(&gf.logFile, "log-file", "", "log file path, - to discard (default .flashdigest/flashdigest.log)")

    root.AddCommand(
        &cobra.Command{
            Use:   "tui",
            Short: "Start the interactive TUI (default)",
            Args:  cobra.NoArgs,
            RunE: func(cmd *cobra.Command, args []string) error {
                return runTUI(gf)
            },
        },
        newProcessCmd(gf),
        newDoctorCmd(gf),
        newInitCmd(gf),
        &cobra.Command{
            Use:   "version",
            Short: "Print version",
            Run: func(cmd *cobra.Command, args []string) {
                fmt.Fprintln(cmd.OutOrStdout(), "flashdigest", Version)
            },
        },
    )
    return root
}

func newProcessCmd(gf *globalFlags) *cobra.Command {
    var copyOut bool
    cmd := &cobra.Command{
        Use:   "process <url>",
        Short: "Send one URL to the backend and print the result",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            a, err := setup(gf)
            if err != nil {
                return err
            }
            defer a.close()
            if err := a.startBackend(cmd.Context()); err != nil {
                return err
            }

            st := state.SetURLText(state.New(a.cfg.Mode()), args[0])
            st, req := state.BeginSubmit(st)
            if req == nil {
                return errors.New(st.Output)
            }
            a.log.WithFields(logrus.Fields{"url": req.URL, "mode": req.Mode}).Info("dispatching request")
            res, perr := a.client.Process(cmd.Context(), req.URL, req.Mode)
            if perr != nil {
                a.log.WithError(perr).Error("Error calling backend")
            }
            st = state.Resolve(st, st.Token, res, perr)
            if perr != nil {
                return errors.New(st.Output)
            }
            fmt.Fprintln(cmd.OutOrStdout(), st.Output)
            if copyOut {
                if err := clipboard.WriteAll(st.Output); err != nil {
                    fmt.Fprintf(cmd.ErrOrStderr(), "copy failed: %v\n", err)
                }
            }
            return nil
        },
    }
    cmd.Flags().BoolVar(&copyOut, "copy", false, "also copy the result to the clipboard")
    return cmd
}

func newDoctorCmd(gf *globalFlags) *cobra.Command {
    return &cobra.Command{
        Use:   "doctor",
        Short: "Show effective settings and check the backend is reachable",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            a, err := setup(gf)
            if err != nil {
                return err
            }
            defer a.close()

            out := cmd.OutOrStdout()
            fmt.Fprintln(out, "Settings:")
            fmt.Fprintf(out, "  %-10s %s\n", "config:", gf.configPath)
            fmt.Fprintf(out, "  %-10s %s\n", "endpoint:", a.client.Endpoint())
            fmt.Fprintf(out, "  %-10s %s\n", "timeout:", a.cfg.Backend.Timeout)
            fmt.Fprintf(out, "  %-10s %s\n", "mode:", a.cfg.Mode().Label())
            fmt.Fprintf(out, "  %-10s %s\n", "log file:", a.cfg.Log.File)
            if len(a.cfg.Backend.Command) > 0 {
                fmt.Fprintf(out, "  %-10s %s\n", "spawns:", strings.Join(a.cfg.Backend.Command, " "))
            }

            ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
            defer cancel()
            fmt.Fprintln(out, "Backend check:")
            if err := a.client.Ping(ctx); err != nil {
                a.log.WithError(err).Warn("backend ping failed")
                fmt.Fprintf(out, "  ✗ %s unreachable: %v\n", a.client.BaseURL(), err)
                return errors.New(state.MsgBackendDown)
            }
            fmt.Fprintf(out, "  ✓ %s is up\n", a.client.BaseURL())
            if msg, err := a.client.Welcome(ctx); err != nil {
                a.log.WithError(err).Debug("backend root is not the welcome route")
            } else if msg != "" {
                fmt.Fprintf(out, "  ✓ says %q\n", msg)
            }
            return nil
        },
    }
}

func newInitCmd(gf *globalFlags) *cobra.Command {
    return &cobra.Command{
        Use:   "init",
        Short: "Write a default config file if none exists",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            out := cmd.OutOrStdout()
            if _, err := os.Stat(gf.configPath); err == nil {
                fmt.Fprintln(out, gf.configPath, "already exists; not overwriting")
                return nil
            } else if !errors.Is(err, os.ErrNotExist) {
                return fmt.Errorf("stat config: %w", err)
            }
            if err := config.Save(gf.configPath, config.Default()); err != nil {
                return fmt.Errorf("write config: %w", err)
            }
            fmt.Fprintln(out, "Wrote", gf.configPath)
            return nil
        },
    }
}

func runTUI(gf *globalFlags) error {
    a, err := setup(gf)
    if err != nil {
        return err
    }
    defer a.close()
    if err := a.startBackend(context.Background()); err != nil {
        return err
    }
    a.log.WithField("endpoint", a.client.Endpoint()).Info("starting tui")
    return tui.Run(tui.Options{
        Processor: a.client,
        Mode:      a.cfg.Mode(),
        Log:       a.log,
        Endpoint:  a.client.Endpoint(),
        LogoWidth: a.cfg.UI.LogoWidth,
        NoColor:   a.cfg.UI.NoColor,
    })
}

// setup resolves config in order file < env < flags, then builds the
// logger and backend client.
func setup(gf *globalFlags) (*app, error) {
    cfg, err := loadConfig(gf, os.Getenv)
    if err != nil {
        return nil, err
    }
    log, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
    if err != nil {
        return nil, err
    }
    client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.ProcessPath, cfg.Backend.Timeout, log)
    sup := proc.NewSupervisor(log.WithField("component", "backend").Infof)
    return &app{cfg: cfg, log: log, closer: closer, client: client, sup: sup}, nil
}

// startBackend launches backend.command, if configured, and waits for the
// base URL to answer. A backend that is already up is reused.
func (a *app) startBackend(ctx context.Context) error {
    argv := a.cfg.Backend.Command
    if len(argv) == 0 {
        return nil
    }
    pingCtx, cancel := context.WithTimeout(ctx, time.Second)
    err := a.client.Ping(pingCtx)
    cancel()
    if err == nil {
        a.log.WithField("url", a.client.BaseURL()).Info("backend already running; not spawning")
        return nil
    }
    // Not bound to ctx: StopAll owns shutdown.
    c, err := proc.Command(context.Background(), argv)
    if err != nil {
        return fmt.Errorf("backend.command: %w", err)
    }
    if _, err := a.sup.Start("backend", c); err != nil {
        return fmt.Errorf("start backend: %w", err)
    }
    if err := a.client.WaitReady(ctx, a.cfg.Backend.StartupTimeout); err != nil {
        return fmt.Errorf("backend did not come up: %w", err)
    }
    a.log.WithField("pid", a.sup.ChildPID("backend")).Info("backend ready")
    return nil
}

// close stops spawned children, then the log file.
func (a *app) close() {
    if a.sup.Running() > 0 {
        ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
        if err := a.sup.StopAll(ctx); err != nil {
            a.log.WithError(err).Warn("stopping backend")
        }
        cancel()
    }
    _ = a.closer.Close()
}

func loadConfig(gf *globalFlags, getenv func(string) string) (*config.Config, error) {
    cfg, err := config.Load(gf.configPath)
    if err != nil {
        return nil, err
    }
    if err := cfg.ApplyEnv(getenv); err != nil {
        return nil, err
    }
    if gf.backendURL != "" {
        cfg.Backend.BaseURL = strings.TrimSpace(gf.backendURL)
    }
    if gf.timeout > 0 {
        cfg.Backend.Timeout = gf.timeout
    }
    if gf.mode != "" {
        cfg.UI.DefaultMode = gf.mode
    }
    if gf.noColor {
        cfg.UI.NoColor = true
    }
    if gf.logLevel != "" {
        cfg.Log.Level = gf.logLevel
    }
    if gf.logFile != "" {
        cfg.Log.File = gf.logFile
    }
    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    return cfg, nil
}
