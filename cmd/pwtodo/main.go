// Package main is the entry point for the pwtodo panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/RobTranquillo/obsidian-pw/internal/config"
	"github.com/RobTranquillo/obsidian-pw/internal/logging"
	"github.com/RobTranquillo/obsidian-pw/internal/source"
	"github.com/RobTranquillo/obsidian-pw/internal/tui"
)

const version = "0.1.0"

const helpText = `pwtodo - Terminal todo panel for your notes

USAGE:
    pwtodo [OPTIONS]

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --init              Create a template config file
    --config <path>     Use a different config file
    --source <path>     Read todos from this snapshot (.yaml, .json or .toml)

CONFIGURATION:
    Config file: ~/.config/pwtodo/config.yaml
    Log file:    ~/.local/share/pwtodo/pwtodo.log

    To get started:
    1. Run 'pwtodo --init' to create a config template
    2. Point 'source' at the snapshot written by your todo extractor
    3. Run 'pwtodo'

KEYBINDINGS:
    Navigation:
        j/k         Move down/up
        g/G         Go to top/bottom
        h           Collapse, or jump to the parent item

    Items:
        Tab/Space   Fold/unfold subtasks
        l           Unfold subtasks
        x           Toggle done
        Enter/o     Open the note at the item's line
        m           Drag out (copies the item to the clipboard)

    Other:
        /           Filter (text, key:value, is:status, @key)
        Esc         Clear filter
        r           Reload
        ?           Show help
        q           Quit

    Mouse:
        Click the status icon to toggle done, the text to open the note,
        the arrow to fold. Drag an item off its row to copy it.
`

const configTemplate = `# pwtodo configuration
# Location: ~/.config/pwtodo/config.yaml

# Snapshot of your todos written by the extractor (.yaml, .json or .toml)
source: ""

# Editor used to open notes; defaults to $VISUAL, then $EDITOR
# editor: "nvim"

ui:
  # Drop complete and canceled todos from the lists (default: true)
  hide_completed: true

  # How fold state identifies items: "text" or "position"
  fold_key: text

  # Click handling (default: true)
  mouse: true

  # Reload when the snapshot changes on disk (default: true)
  watch: true

notifications:
  # Desktop notification when a todo becomes due
  enabled: false

log:
  # debug, info, warn or error
  level: info
  # file: ~/.local/share/pwtodo/pwtodo.log
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Define flags
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		configPath  string
		sourcePath  string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&sourcePath, "source", "", "Path to todo snapshot")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	// Handle flags
	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("pwtodo version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate(configPath)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if sourcePath != "" {
		cfg.Source = sourcePath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'pwtodo --init' or pass --source)", err)
	}

	return runApp(cfg)
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate(path string) error {
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the config file and set source to your todo snapshot")
	fmt.Println("  2. Run 'pwtodo' to start")

	return nil
}

// runApp starts the panel and, when enabled, the snapshot watcher.
func runApp(cfg *config.Config) error {
	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("failed to get log path: %w", err)
	}
	logger, logFile, err := logging.Open(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetDefault(logger)

	store := source.NewStore(cfg.Source, logger)

	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := tui.Options{
		Config: cfg,
		Store:  store,
		Logger: logger,
	}

	if cfg.UI.Watch {
		watcher, err := source.NewWatcher(cfg.Source, source.WithOnError(func(err error) {
			logger.Warn("Snapshot watcher error", "err", err)
		}))
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Source, err)
		}
		opts.Changes = watcher.Changed()
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	app, err := tui.NewApp(opts)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, programOpts...)

	g.Go(func() error {
		// Quitting the panel stops the watcher.
		defer cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})

	logger.Info("Started", "version", version, "source", cfg.Source)
	return g.Wait()
}
