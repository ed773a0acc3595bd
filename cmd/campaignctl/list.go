package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/domain/vote"
	"genz-ignite/internal/ledger"
)

const placeholderNotice = "server unavailable, showing sample data"

var policyFilterAll = policy.Filter{}

func newPoliciesCmd() *cobra.Command {
	var f policy.Filter
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List campaign policies by votes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			list, placeholder := s.api.PoliciesOrPlaceholder(cmd.Context(), f)
			voted, err := s.ballots.Get(ledger.CategoryPolicy)
			if err != nil {
				return err
			}
			if placeholder {
				fmt.Fprintln(cmd.ErrOrStderr(), yellow(placeholderNotice))
			}
			printPolicies(cmd.OutOrStdout(), list, voted)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "Only this category")
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "Search title and description")
	return cmd
}

func newPollsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "polls",
		Short: "Show the live poll",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			opts, placeholder := s.api.PollOptionsOrPlaceholder(cmd.Context())
			voted, err := s.ballots.Get(ledger.CategoryPoll)
			if err != nil {
				return err
			}
			if placeholder {
				fmt.Fprintln(cmd.ErrOrStderr(), yellow(placeholderNotice))
			}
			printPoll(cmd.OutOrStdout(), opts, voted)
			return nil
		},
	}
	cmd.AddCommand(newWatchCmd())
	return cmd
}

func printPolicies(w io.Writer, list []policy.Policy, voted map[int64]struct{}) {
	for _, p := range list {
		fmt.Fprintf(w, "%s %3d  %-32s %5d votes  %s %d%%\n",
			mark(voted, p.ID), p.ID, p.Title, p.Votes, p.Status, p.Progress)
	}
}

func printPoll(w io.Writer, opts []poll.Option, voted map[int64]struct{}) {
	results, total := vote.Tally(opts)
	for _, r := range results {
		bar := strings.Repeat("#", int(r.Percentage/5))
		fmt.Fprintf(w, "%s %3d  %-16s %5d  %5.1f%% %s\n",
			mark(voted, r.OptionID), r.OptionID, r.OptionName, r.Votes, r.Percentage, bar)
	}
	fmt.Fprintf(w, "total %d\n", total)
}

func mark(voted map[int64]struct{}, id int64) string {
	if _, ok := voted[id]; ok {
		return green("✓")
	}
	return " "
}
