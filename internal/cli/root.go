package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/chazu/frames/internal/config"
	"github.com/chazu/frames/pkg/engine"
	"github.com/chazu/frames/pkg/geom"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) { version = v }

// Execute runs the frames CLI.
func Execute() error {
	return newRootCmd(os.Stderr).ExecuteContext(context.Background())
}

// session is the state resolved by the root command before any subcommand
// runs.
type session struct {
	cfg    config.Config
	engine *engine.Engine
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
		s          = &session{cfg: config.Default()}
	)

	root := &cobra.Command{
		Use:          "frames",
		Short:        "frames evaluates and applies 3D coordinate transforms",
		Long:         `frames reads transform descriptions written in a small Lisp, registers the transforms they define and maps points between local and master frames.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(logOut, level)
			timeout, _ := cfg.EvalTimeout()

			s.cfg = cfg
			s.engine = engine.NewEngine(
				engine.WithTimeout(timeout),
				engine.WithTolerance(cfg.Geometry.Tolerance),
				engine.WithLogger(logger),
			)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			logger.Debug("config loaded", "tolerance", cfg.Geometry.Tolerance, "timeout", timeout)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("config file (default %s if present)", config.DefaultPath))

	root.AddCommand(newEvalCmd(s))
	root.AddCommand(newMapCmd(s))
	return root
}

// evaluateFile reads and evaluates path, reporting non-fatal errors to w.
func (s *session) evaluateFile(ctx context.Context, w io.Writer, path string) (*geom.Registry, error) {
	logger := loggerFromContext(ctx)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	reg, evalErrs, err := s.engine.Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	for _, e := range evalErrs {
		printError(w, "%s: %s", path, e.Error())
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("%s: %d evaluation error(s)", path, len(evalErrs))
	}
	prog.done(fmt.Sprintf("evaluated %s", path))
	return reg, nil
}
