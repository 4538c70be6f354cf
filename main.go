// Package main provides the chatpulse CLI entry point.
// chatpulse analyses exported chat transcripts: activity over time, reply
// behaviour, conversation roles, anomalies and an overall health score.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/cmd"
	"github.com/otherjamesbrown/chatpulse/config"
	"github.com/otherjamesbrown/chatpulse/pkg/buildinfo"
	"github.com/otherjamesbrown/chatpulse/pkg/logging"
)

// rootFlags holds the global flags.
type rootFlags struct {
	cfgFile      string
	outputFormat string
	logFormat    string
	debug        bool
}

// skipsConfig lists the commands that run without loading configuration.
var skipsConfig = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"init":       true,
}

// newRootCmd builds the command tree around deps.
func newRootCmd(deps *cmd.CommandDeps) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "chatpulse",
		Short: "Behavioural analytics for chat transcripts",
		Long: `chatpulse analyses exported chat transcripts.

It parses "D/M/YY, H:MM am - Author: text" exports (plain text, or the .txt
inside a .zip export) and reports per participant and for the whole
conversation:

  activity      daily, hourly, weekly, monthly and yearly message counts
  turn-taking   average reply latency and who starts conversations
  roles         Initiator, Responder, Driver, Listener, Broadcaster
  anomalies     unusual days and long silences
  health        a 0-100 score with a rating from Cold to Legendary

Every command supports --output json and --output yaml.

COMMON WORKFLOWS:
  Full report:     chatpulse analyze chat.txt
  One person:      chatpulse analyze chat.txt --user Alice
  Who talks most:  chatpulse users chat.txt
  Quick verdict:   chatpulse health chat.txt --user Overall`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if skipsConfig[c.Name()] {
				return nil
			}

			cfg, err := config.LoadConfigFrom(flags.cfgFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			// Override with command-line flags.
			if flags.outputFormat != "" {
				cfg.OutputFormat = config.OutputFormat(flags.outputFormat)
			}
			if flags.logFormat != "" {
				cfg.LogFormat = flags.logFormat
			}
			if flags.debug {
				cfg.LogLevel = string(logging.LevelDebug)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := logging.ParseLevel(cfg.LogLevel)
			deps.Config = cfg
			deps.Logger = logging.NewLogger(&logging.Config{
				Level:       level,
				ServiceName: buildinfo.Generator,
				JSONFormat:  cfg.LogFormat == config.LogFormatJSON,
				Output:      c.ErrOrStderr(),
			})
			deps.Logger.Debug("Configuration loaded",
				logging.F("output_format", cfg.OutputFormat),
				logging.F("workers", cfg.Workers),
			)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is ~/.chatpulse/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.outputFormat, "output", "", "output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: console, json")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "analysis", Title: "Analysis Commands:"},
		&cobra.Group{ID: "setup", Title: "Setup Commands:"},
	)

	for _, c := range []*cobra.Command{
		cmd.NewAnalyzeCommand(deps),
		cmd.NewUsersCommand(deps),
		cmd.NewHealthCommand(deps),
		cmd.NewAnomaliesCommand(deps),
		cmd.NewRolesCommand(deps),
	} {
		c.GroupID = "analysis"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{
		newConfigCmd(deps, flags),
		newCompletionCmd(rootCmd),
		newVersionCmd(flags),
	} {
		c.GroupID = "setup"
		rootCmd.AddCommand(c)
	}

	return rootCmd
}

// newVersionCmd prints version information.
func newVersionCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build time of chatpulse.

Use --output json for machine-readable output.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			info := buildinfo.Get()
			if config.OutputFormat(flags.outputFormat) == config.OutputFormatJSON {
				enc := json.NewEncoder(c.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintf(c.OutOrStdout(), "%s %s\n  Commit:     %s\n  Built:      %s\n  Go version: %s\n",
				info.Generator, info.Version, info.Commit, info.BuildTime, info.GoVersion)
			return err
		},
	}
}

// newConfigCmd groups the configuration subcommands.
func newConfigCmd(deps *cmd.CommandDeps, flags *rootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage chatpulse configuration",
		Long:  `View and initialise the chatpulse configuration file.`,
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after the config file, .env, CHATPULSE_*
environment variables and flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path := flags.cfgFile
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			data, err := config.Marshal(deps.Config)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(c.OutOrStdout(), "# Config file: %s\n", path); err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise the configuration file",
		Long:  `Create a configuration file with default values if one doesn't exist.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			configPath, err := config.ConfigPath()
			if err != nil {
				return fmt.Errorf("getting config path: %w", err)
			}

			out := c.OutOrStdout()
			if _, err := os.Stat(configPath); err == nil && !force {
				fmt.Fprintf(out, "Configuration file already exists: %s\n", configPath)
				fmt.Fprintln(out, "Use 'chatpulse config show' to view current settings, or --force to overwrite.")
				return nil
			}

			written, err := config.SaveConfig(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}
			fmt.Fprintf(out, "Created configuration file: %s\n", written)
			return nil
		},
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configShowCmd, configInitCmd)
	return configCmd
}

// newCompletionCmd generates shell completion scripts.
func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for chatpulse.

Bash:
  $ source <(chatpulse completion bash)

Zsh:
  $ chatpulse completion zsh > "${fpath[1]}/_chatpulse"

Fish:
  $ chatpulse completion fish | source

PowerShell:
  PS> chatpulse completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func main() {
	// Cancel in-flight analysis on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd(cmd.DefaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
