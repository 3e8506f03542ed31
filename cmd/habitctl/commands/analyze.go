package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTodayCmd(opts Options, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's date as YYYY-MM-DD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			az, err := flags.analyzer(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), az.CurrentDate())
			return nil
		},
	}
}

func newStreakCmd(opts Options, flags *rootFlags) *cobra.Command {
	var completions []string

	cmd := &cobra.Command{
		Use:     "streak",
		Short:   "Print the current and longest streak",
		Example: "  habitctl streak --completions 2024-06-08,2024-06-09,2024-06-10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			az, err := flags.analyzer(opts)
			if err != nil {
				return err
			}

			summary, err := az.Summarize(completions)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "current streak: %d\n", summary.CurrentStreak)
			fmt.Fprintf(out, "longest streak: %d\n", summary.LongestStreak)
			fmt.Fprintf(out, "completed today: %t\n", summary.CompletedToday)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&completions, "completions", nil, "comma separated completion dates (YYYY-MM-DD)")

	return cmd
}

func newHistoryCmd(opts Options, flags *rootFlags) *cobra.Command {
	var completions []string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the last 7 days, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			az, err := flags.analyzer(opts)
			if err != nil {
				return err
			}

			history, err := az.Last7DayHistory(completions)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, day := range history {
				mark := "-"
				if day.Completed == 1 {
					mark = "x"
				}
				fmt.Fprintf(out, "%s %s %s\n", day.Date, day.Day, mark)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&completions, "completions", nil, "comma separated completion dates (YYYY-MM-DD)")

	return cmd
}
