package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tinytelemetry/logsearch/internal/backend"
	"github.com/tinytelemetry/logsearch/internal/logging"
	"github.com/tinytelemetry/logsearch/internal/logstore"
	"github.com/tinytelemetry/logsearch/internal/timerange"
	"github.com/tinytelemetry/logsearch/internal/tui"
)

var (
	configPath string
	serverFlag string
	viewFlag   string

	cfg       cliConfig
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "logsearch",
	Short: "Terminal dashboard for a log-search server",
	Long: `logsearch charts log density and per-view metrics from a log-search
server and lists the matching log rows. Run without a subcommand to open the
dashboard.`,
	Annotations:        map[string]string{interactiveAnnotation: "true"},
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/logsearch/config.yml)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "log-search server base URL")
	rootCmd.PersistentFlags().StringVar(&viewFlag, "view", "", "view to open")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(viewsCmd)
}

// interactiveAnnotation marks commands that draw the dashboard and so must
// keep log output off the terminal.
const interactiveAnnotation = "interactive"

func interactive(cmd *cobra.Command) bool {
	return cmd.Annotations[interactiveAnnotation] == "true"
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := loadCLIConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serverFlag != "" {
		loaded.ServerURL = serverFlag
	}
	if viewFlag != "" {
		loaded.View = viewFlag
	}
	cfg = loaded

	level := logging.ParseLevel(cfg.LogLevel)
	if interactive(cmd) {
		closer, err := logging.Init(cfg.LogFile, level)
		if err != nil {
			return err
		}
		logCloser = closer
	} else {
		logging.InitConsole(level)
	}
	log.Debug().Str("server", cfg.ServerURL).Str("command", cmd.Name()).Msg("logsearch: starting")
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func newClient(c cliConfig) *backend.Client {
	return backend.New(c.ServerURL, backend.WithTimeout(c.RequestTimeout))
}

func runTUI(c cliConfig) error {
	client := newClient(c)
	store := logstore.New(client, timerange.New(), logstore.WithDensityBuckets(c.DensityBuckets))

	dashboard := tui.NewDashboardModel(store, client, tui.Config{
		PreferredView:      c.View,
		RefreshInterval:    c.RefreshInterval,
		ReverseScrollWheel: c.ReverseScrollWheel,
		ServerURL:          client.BaseURL(),
	})
	defer dashboard.Close()

	app := tui.NewApp(tui.NewDashboardPage(dashboard), tui.NewHelpPage(dashboard.Keys()))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
