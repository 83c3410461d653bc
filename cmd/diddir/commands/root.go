package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"diddir/internal/app"
	"diddir/internal/config"
)

const (
	modeAnnotation = "diddir/store-mode"

	modeOpen       = "open"
	modeOpenOrInit = "open-or-init"
	modeInit       = "init"
	modeNone       = "none"
)

var (
	root       string
	configPath string
	logLevel   string
	appCtx     *app.Wire
	settings   *config.Settings
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root, configPath, logLevel = "", "", ""
	appCtx, settings = nil, nil

	cmd := &cobra.Command{
		Use:           "diddir",
		Short:         "Local, permission-hardened store for identity documents",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root != "" {
				abs, err := filepath.Abs(root)
				if err != nil {
					return err
				}
				root = abs
			}
			s, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				s.Logging.Level = logLevel
				if err := config.Validate(s); err != nil {
					return err
				}
			}
			settings = s

			mode := storeMode(cmd)
			if mode == modeNone {
				return nil
			}
			w, err := app.NewWire(app.Config{Settings: s, Root: root, Mode: wireMode(mode)})
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&root, "root", "", "store root directory (default: platform data dir)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: "+config.DefaultConfigPath()+")")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")

	cmd.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		inspectCmd(),
		removeCmd(),
		aliasCmd(),
		resolveCmd(),
		configCmd(),
	)
	return cmd
}

// storeMode returns the nearest store-mode annotation on cmd or its parents.
func storeMode(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if m, ok := c.Annotations[modeAnnotation]; ok {
			return m
		}
	}
	return modeOpen
}

func wireMode(mode string) app.Mode {
	switch mode {
	case modeInit:
		return app.ModeInit
	case modeOpenOrInit:
		return app.ModeOpenOrInit
	default:
		return app.ModeOpen
	}
}

func withMode(mode string) map[string]string {
	return map[string]string{modeAnnotation: mode}
}
