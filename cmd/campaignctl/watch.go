package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"genz-ignite/internal/client"
	"genz-ignite/internal/ledger"
	"genz-ignite/internal/livepoll"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow poll counts as other devices vote",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := ledger.New(ledger.CategoryPoll, s.ballots, s.api, s.logger)
			if err != nil {
				return err
			}
			opts, placeholder := s.api.PollOptionsOrPlaceholder(cmd.Context())
			if placeholder {
				fmt.Fprintln(cmd.ErrOrStderr(), yellow(placeholderNotice))
			}
			l.Load(client.PollItems(opts))

			voted, err := s.ballots.Get(ledger.CategoryPoll)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printPoll(w, opts, voted)

			syncer := &livepoll.Syncer{
				Subscriber: s.api,
				Target:     l,
				Logger:     s.logger,
				OnChange: func(c livepoll.Change) {
					fmt.Fprintf(w, "%s %s -> %d\n", green("update"), c.OptionName, l.Count(c.ID))
				},
			}
			if err := syncer.Run(cmd.Context(), livepoll.CollectionPolls); err != nil {
				return err
			}
			if cmd.Context().Err() == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), yellow("live updates stopped, counts may be stale"))
			}
			return nil
		},
	}
}
