// Package cli wires the daytodo commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"daytodo/internal/board"
	"daytodo/internal/config"
	"daytodo/internal/effect"
	"daytodo/internal/logging"
	"daytodo/internal/storage"
	"daytodo/internal/ui"
)

const Version = "0.1.0"

var (
	badStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244"))
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type options struct {
	configPath string
}

// app is everything a command needs, opened from the config.
type app struct {
	cfg    config.Config
	logger *log.Logger
	board  *board.Board
	slot   storage.Slot
	logs   io.Closer
}

func (a *app) Close() error {
	err := a.slot.Close()
	if cerr := a.logs.Close(); err == nil {
		err = cerr
	}
	return err
}

// openApp loads the config and opens the store. celebrate builds the
// completion effect from the loaded config.
func openApp(opts *options, celebrate func(config.Config) board.Celebration) (*app, error) {
	path := opts.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, logs, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	slot, err := storage.OpenSlot(cfg.Backend, cfg.StorePath, cfg.StoreKey)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info("opened store", "backend", cfg.Backend, "path", cfg.StorePath)
	b := board.New(slot, celebrate(cfg), board.WithLogger(logger))
	return &app{cfg: cfg, logger: logger, board: b, slot: slot, logs: logs}, nil
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "daytodo",
		Short:         "To-do list for the days of the month",
		Long:          "daytodo keeps a task list for each day of the month and opens a terminal board when run without a subcommand.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(opts)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default $DAYTODO_CONFIG or ~/.config/daytodo/config.toml)")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, badStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func runBoard(opts *options) error {
	var confetti *effect.Confetti
	a, err := openApp(opts, func(cfg config.Config) board.Celebration {
		confetti = effect.NewConfetti(cfg.Confetti, nil)
		return confetti
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := ui.Run(a.board, confetti, a.cfg, ui.WithLogger(a.logger)); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

func quiet(config.Config) board.Celebration {
	return effect.Nop{}
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("day %q is not a number", s)
	}
	if day < board.MinDay || day > board.MaxDay {
		return 0, fmt.Errorf("%w: %d (want %d-%d)", board.ErrDayOutOfRange, day, board.MinDay, board.MaxDay)
	}
	return day, nil
}

// parseOrdinal turns the 1-based number shown in listings into an index.
func parseOrdinal(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("task number %q must be a positive integer", s)
	}
	return n - 1, nil
}
