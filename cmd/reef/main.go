package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reeflab/reef/internal/domain/service"
	"github.com/reeflab/reef/internal/infrastructure/config"
	"github.com/reeflab/reef/internal/infrastructure/hookcfg"
	"github.com/reeflab/reef/internal/infrastructure/ingest"
	"github.com/reeflab/reef/internal/infrastructure/logger"
	"github.com/reeflab/reef/internal/interfaces/tui"
)

const (
	cliVersion = "0.1.0"
	cliName    = "reef"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   cliName,
		Short: "reef is a terminal aquarium for live agent sessions",
		Long:  "reef renders agent telemetry as an ASCII aquarium: sub-agents swim as fish, tool calls rise as bubbles, external integrations sail by.",
		RunE:  runAquarium,
	}

	rootCmd.Flags().String("sock", "", "unix socket path (overrides config)")
	rootCmd.Flags().Bool("demo", false, "start with synthetic demo events")
	rootCmd.Flags().String("scenario", "", "replay a YAML scenario file instead of live events")
	rootCmd.Flags().Int("fps", 0, "animation frames per second (overrides config)")
	rootCmd.Flags().String("log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(newHookCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newCheckCmd())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s v%s\n", cliName, cliVersion)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAquarium(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if s, _ := cmd.Flags().GetString("sock"); s != "" {
		cfg.Server.SocketPath = s
	}
	if fps, _ := cmd.Flags().GetInt("fps"); fps > 0 {
		cfg.Render.FPS = fps
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	demoFlag, _ := cmd.Flags().GetBool("demo")
	scenario, _ := cmd.Flags().GetString("scenario")
	if scenario == "" {
		scenario = cfg.Demo.ScenarioPath
	}

	log, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.Path,
	})
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer log.Sync()

	queue := ingest.NewQueue(ingest.DefaultQueueCapacity)
	server := ingest.NewServer(cfg.Server.SocketPath, queue, log)
	if err := server.Start(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	defer server.Stop()

	watcher := config.NewWatcher("./config.yaml", cfg, log)
	if err := watcher.Start(); err != nil {
		log.Warn("Config watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	world := service.NewWorld(initialBounds(), rng, log)
	if cfg.Render.MainLabel != "" {
		world.MainFish.Label = cfg.Render.MainLabel
	}
	sim := service.NewSimulation(world, queue, log)

	demo := service.NewDemoDirector(server, rand.New(rand.NewSource(rng.Int63())), cfg.Demo.ErrorRate, log)
	defer demo.Stop()
	switch {
	case scenario != "":
		if err := demo.PlayScenario(scenario); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	case demoFlag || cfg.Demo.Enabled:
		demo.Start()
	}

	program := tea.NewProgram(
		tui.New(sim, demo, cfg.Render.FPS, log),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// initialBounds seeds the world before the first WindowSizeMsg arrives.
func initialBounds() service.Bounds {
	return service.Bounds{W: 80, H: 24}
}

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "hook",
		Short:  "Forward one hook payload from stdin to the viewer socket",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			// Always exits zero; a missing viewer must not fail the hook.
			hookcfg.Send(os.Stdin, config.DefaultSocketPath())
		},
	}
}

func newInstallCmd() *cobra.Command {
	var settingsPath, sockPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install hook entries into the agent runner settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			binPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve binary path: %w", err)
			}

			if conflicts := hookcfg.Conflicts(settingsPath); len(conflicts) > 0 && !yes {
				fmt.Printf("Warning: existing hooks found for: %v\n", conflicts)
				fmt.Println("New entries will be APPENDED to existing hooks (not replaced).")
				fmt.Print("Continue? [y/N] ")
				var answer string
				fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := hookcfg.Install(settingsPath, binPath, sockPath); err != nil {
				return err
			}
			fmt.Printf("Hooks installed to %s\n", settingsPath)
			fmt.Printf("Socket path: %s\n", sockPath)
			fmt.Println("\nRestart the agent session to activate hooks.")
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", hookcfg.DefaultSettingsPath(), "settings file to modify")
	cmd.Flags().StringVar(&sockPath, "sock", config.DefaultSocketPath(), "unix socket path the hooks send to")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the conflict confirmation")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove previously installed hook entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := hookcfg.Uninstall(settingsPath)
			if err != nil {
				return err
			}
			if changed {
				fmt.Println("Hooks removed.")
			} else {
				fmt.Println("No hooks found to remove.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", hookcfg.DefaultSettingsPath(), "settings file to modify")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show hook entries in the agent runner settings",
		Run: func(cmd *cobra.Command, args []string) {
			st := hookcfg.Check(settingsPath)
			if len(st.Handlers) == 0 {
				fmt.Println("No hooks configured.")
				return
			}
			fmt.Println("Current hooks in settings:")
			for _, name := range hookcfg.HookEvents {
				if n, ok := st.Handlers[name]; ok {
					fmt.Printf("  %s: %d handler(s)\n", name, n)
				}
			}
			if st.Installed {
				fmt.Println("reef hooks: installed")
			} else {
				fmt.Println("reef hooks: not installed")
			}
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", hookcfg.DefaultSettingsPath(), "settings file to inspect")
	return cmd
}
