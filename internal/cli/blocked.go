package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tigerlee/internal/application/orchestrators"
	"tigerlee/internal/domain/blockeddate"
)

func newBlockedCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocked",
		Short: "Manage dates closed to bookings",
	}
	cmd.AddCommand(newBlockedListCmd(load))
	cmd.AddCommand(newBlockedChangeCmd(load, "add", "Close a date to bookings", orchestrators.ExecuteBlockDate))
	cmd.AddCommand(newBlockedChangeCmd(load, "remove", "Reopen a date", orchestrators.ExecuteUnblockDate))
	return cmd
}

func newBlockedListCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print blocked dates in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			set, err := a.stores.BlockedDates.Load(cmd.Context())
			if err != nil {
				return err
			}
			printDates(cmd, set)
			return nil
		},
	}
}

type blockedChange func(context.Context, orchestrators.BlockDateInput, orchestrators.BlockedDateDeps) (blockeddate.Set, error)

// newBlockedChangeCmd builds add/remove. The CLI runs outside the server
// process, so no events are published; open views pick up the change on
// their next load.
func newBlockedChangeCmd(load configLoader, use, short string, change blockedChange) *cobra.Command {
	return &cobra.Command{
		Use:   use + " YYYY-MM-DD...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			deps := orchestrators.BlockedDateDeps{
				Store:      a.stores.BlockedDates,
				GenerateID: uuid.NewString,
				Now:        time.Now,
			}
			var set blockeddate.Set
			for _, date := range args {
				if set, err = change(cmd.Context(), orchestrators.BlockDateInput{Date: date}, deps); err != nil {
					return fmt.Errorf("%s: %w", date, err)
				}
			}
			printDates(cmd, set)
			return nil
		},
	}
}

func printDates(cmd *cobra.Command, set blockeddate.Set) {
	out := cmd.OutOrStdout()
	dates := set.Dates()
	if len(dates) == 0 {
		fmt.Fprintln(out, "no blocked dates")
		return
	}
	for _, d := range dates {
		fmt.Fprintln(out, d)
	}
}
