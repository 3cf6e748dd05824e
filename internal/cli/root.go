package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/webgrid/logger"
	"github.com/benoitkugler/webgrid/version"
)

// settings are shared by the commands, and resolved before they run.
type settings struct {
	configPath    string
	width, height float64
	verbose       bool

	config Config
}

// Execute runs the webgrid CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand returns the root command, with all the subcommands.
func NewRootCommand() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:          "webgrid",
		Short:        "webgrid lays out HTML documents with CSS grid",
		Long:         `webgrid is a CSS grid layout solver. It lays out HTML files styled with inline style attributes, and prints or draws the result.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if s.verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), l))
			logger.SetVerbose(s.verbose)
			return s.resolve(cmd, l)
		},
	}

	root.SetVersionTemplate(version.VersionString + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&s.configPath, "config", defaultConfigPath, "path of the TOML configuration file")
	flags.Float64Var(&s.width, "width", 0, "viewport width, overriding the configuration")
	flags.Float64Var(&s.height, "height", 0, "viewport height, overriding the configuration")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLayoutCmd(s))
	root.AddCommand(newRenderCmd(s))
	return root
}

// resolve loads the configuration file and applies the flags on top of it.
func (s *settings) resolve(cmd *cobra.Command, l *charmlog.Logger) error {
	cfg, err := loadConfig(s.configPath, cmd.Flags().Changed("config"), l)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("width") {
		cfg.Viewport.Width = s.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Viewport.Height = s.height
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	s.config = cfg
	return nil
}

func readFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return f, nil
}
