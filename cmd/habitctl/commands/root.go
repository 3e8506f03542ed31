// Package commands implements habitctl, which runs the completion analyzer
// and the motivation generator on completion dates given on the command line.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitual/internal/config"
	"github.com/comitanigiacomo/habitual/internal/core/analyzer"
)

type Options struct {
	// Now overrides the clock; nil means time.Now.
	Now analyzer.Clock
	// LoadConfig reads the AI settings; nil means config.Load.
	LoadConfig func() (*config.Config, error)
	Logger     *zap.Logger
}

type rootFlags struct {
	tz string
}

func NewRootCmd(opts Options) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "habitctl",
		Short:         "Inspect habit streaks offline",
		Long:          "habitctl computes streaks, 7-day history and motivational messages from a list of completion dates.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.tz, "tz", "", "IANA time zone used to decide today (default: local zone)")

	rootCmd.AddCommand(newTodayCmd(opts, flags))
	rootCmd.AddCommand(newStreakCmd(opts, flags))
	rootCmd.AddCommand(newHistoryCmd(opts, flags))
	rootCmd.AddCommand(newMotivateCmd(opts, flags))

	return rootCmd
}

func (f *rootFlags) analyzer(opts Options) (*analyzer.Analyzer, error) {
	loc := time.Local
	if f.tz != "" {
		l, err := time.LoadLocation(f.tz)
		if err != nil {
			return nil, fmt.Errorf("invalid --tz %q: %w", f.tz, err)
		}
		loc = l
	}
	return analyzer.New(opts.Now, loc), nil
}
