package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habitual/internal/adapters/ai"
	"github.com/comitanigiacomo/habitual/internal/adapters/repository"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

const cliUserID = "habitctl"

func newMotivateCmd(opts Options, flags *rootFlags) *cobra.Command {
	var (
		name        string
		completions []string
		provider    string
		model       string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "motivate",
		Short: "Ask the configured language model for a motivational message",
		Long: "motivate sends the habit name, its completions and its current streak to the AI provider " +
			"(AI_PROVIDER, or --provider). Failures print the fallback message instead of an error.",
		Example: "  habitctl motivate --name Meditate --completions 2024-06-09,2024-06-10 --provider gemini",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}

			az, err := flags.analyzer(opts)
			if err != nil {
				return err
			}

			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}

			aiCfg := ai.Config{
				Provider: cfg.AI.Provider,
				APIKey:   cfg.AI.APIKey,
				Model:    cfg.AI.Model,
				BaseURL:  cfg.AI.BaseURL,
				Timeout:  cfg.AI.Timeout,
			}
			if provider != "" {
				aiCfg.Provider = provider
			}
			if model != "" {
				aiCfg.Model = model
			}

			ctx := cmd.Context()

			generator, err := ai.NewGenerator(ctx, aiCfg, opts.Logger)
			if err != nil {
				return err
			}

			habit, err := domain.NewHabit(cliUserID, name)
			if err != nil {
				return err
			}
			if err := habit.ReplaceCompletions(completions); err != nil {
				return err
			}

			repo := repository.NewInMemoryHabitRepository()
			if err := repo.Create(ctx, habit); err != nil {
				return err
			}

			svc := services.NewMotivationService(repo, generator, nil, az, services.MotivationOptions{
				MaxAttempts:    cfg.AI.MaxAttempts,
				AttemptTimeout: cfg.AI.AttemptTimeout,
			}, opts.Logger)

			result, err := svc.Generate(ctx, habit.ID, cliUserID, az.Location())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message)
			if verbose {
				fmt.Fprintf(out, "source: %s, attempts: %d, streak: %d\n", result.Source, result.Attempts, result.Streak)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "habit name")
	cmd.Flags().StringSliceVar(&completions, "completions", nil, "comma separated completion dates (YYYY-MM-DD)")
	cmd.Flags().StringVar(&provider, "provider", "", "static, gemini, openai or none (overrides AI_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "model name (overrides AI_MODEL)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print where the message came from")

	return cmd
}
