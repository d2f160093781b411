package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studysync/studysync/internal/keys"
	"github.com/studysync/studysync/internal/service"
	appsync "github.com/studysync/studysync/internal/sync"
	"github.com/studysync/studysync/internal/ui/reminders"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for due reminders in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := flags.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			// The TUI owns the terminal; log lines would corrupt it.
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "studysync")
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			poller := appsync.New(service.New(st), appsync.WithInterval(cfg.Reminders.PollInterval()))
			poller.Start()
			defer poller.Stop()

			m := reminders.New(poller, keys.DefaultKeyMap())
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the watcher runs")
	return cmd
}
