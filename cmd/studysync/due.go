package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/notify"
	"github.com/studysync/studysync/internal/service"
	"github.com/studysync/studysync/internal/validate"
)

func newDueCmd(flags *globalFlags) *cobra.Command {
	var (
		at     string
		banner bool
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List scheduled reminders that are due",
		RunE: func(cmd *cobra.Command, args []string) error {
			var when time.Time
			if at != "" {
				t, err := validate.RequireInstant(at, "at")
				if err != nil {
					return err
				}
				when = t
			}

			_, st, err := flags.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			svc := service.New(st)
			if when.IsZero() {
				when = svc.Now()
			}
			items, err := svc.DueReminders(cmd.Context(), when)
			if err != nil {
				return err
			}
			if banner {
				return bannerDue(cmd.Context(), notify.NewConsoleSink(cmd.OutOrStdout()), when, items)
			}
			printDue(cmd.OutOrStdout(), when, items)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Evaluate due reminders at this instant (RFC 3339; default now)")
	cmd.Flags().BoolVar(&banner, "banner", false, "Render each due reminder as a notification banner")
	return cmd
}

func printDue(w io.Writer, at time.Time, items []model.Reminder) {
	if len(items) == 0 {
		fmt.Fprintf(w, "No reminders due at %s\n", at.Format(time.RFC3339))
		return
	}
	fmt.Fprintf(w, "%d reminder(s) due at %s\n", len(items), at.Format(time.RFC3339))
	for _, r := range items {
		n := notify.FromReminder(r, at)
		fmt.Fprintf(w, "  #%d  %s  %-7s  %s\n", r.ID, r.FireAt.Format(time.RFC3339), r.Channel, n.Title)
	}
}

func bannerDue(ctx context.Context, sink notify.Sink, at time.Time, items []model.Reminder) error {
	for _, r := range items {
		if err := sink.Notify(ctx, notify.FromReminder(r, at)); err != nil {
			return fmt.Errorf("rendering reminder %d: %w", r.ID, err)
		}
	}
	return nil
}
