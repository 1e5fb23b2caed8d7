package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/ledger"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent extraction runs from the ledger",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if cfg.Ledger == "" {
		return errors.New("no ledger configured (use --ledger)")
	}
	store, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Runs(historyLimit)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"Run", "Started", "Finished", "Input", "OK", "Failed"})
	var data [][]string
	for _, r := range runs {
		finished := "-"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Local().Format(time.DateTime)
		}
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format(time.DateTime),
			finished,
			r.InputDir,
			strconv.Itoa(r.FilesOK),
			strconv.Itoa(r.FilesFailed),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
