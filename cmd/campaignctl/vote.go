package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"genz-ignite/internal/client"
	"genz-ignite/internal/ledger"
)

func newVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Cast this device's vote for a policy or poll option",
	}
	cmd.AddCommand(
		newVoteCategoryCmd("policy", ledger.CategoryPolicy),
		newVoteCategoryCmd("poll", ledger.CategoryPoll),
	)
	return cmd
}

func newVoteCategoryCmd(use string, category ledger.Category) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: "Vote for a " + use + " item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			items := s.loadItems(cmd, category)
			var current *ledger.Item
			for i := range items {
				if items[i].ID == id {
					current = &items[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("%s %d not found", use, id)
			}

			l, err := ledger.New(category, s.ballots, s.api, s.logger)
			if err != nil {
				return err
			}
			l.Load(items)

			out, err := l.CastVote(cmd.Context(), id, current.Votes)
			w := cmd.OutOrStdout()
			switch out {
			case ledger.Recorded:
				fmt.Fprintf(w, "%s %s now has %d votes\n", green("voted:"), current.Label, l.Count(id))
			case ledger.Skipped:
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s this device already voted for %s\n", yellow("skipped:"), current.Label)
			case ledger.RolledBack:
				fmt.Fprintf(cmd.ErrOrStderr(), "%s vote not saved, try again (%s)\n", red("failed:"), describe(err))
				return err
			}
			return nil
		},
	}
}

// loadItems reads the category's list, falling back to sample data.
func (s *session) loadItems(cmd *cobra.Command, category ledger.Category) []ledger.Item {
	var (
		items       []ledger.Item
		placeholder bool
	)
	switch category {
	case ledger.CategoryPolicy:
		list, ph := s.api.PoliciesOrPlaceholder(cmd.Context(), policyFilterAll)
		items, placeholder = client.PolicyItems(list), ph
	case ledger.CategoryPoll:
		list, ph := s.api.PollOptionsOrPlaceholder(cmd.Context())
		items, placeholder = client.PollItems(list), ph
	}
	if placeholder {
		fmt.Fprintln(cmd.ErrOrStderr(), yellow(placeholderNotice))
	}
	return items
}

func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
