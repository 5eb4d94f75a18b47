package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/urfave/cli/v3"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the symbols and timeframes stored in a candle file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one candle file, got %d arguments", cmd.Args().Len())
			}

			log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck

			source, err := datasource.NewDuckDBCandleSource(cmd.Args().First(), log.Named("datasource"))
			if err != nil {
				return err
			}
			defer source.Close()

			available, err := source.ListAvailable(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(output(cmd), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tTIMEFRAME\tCANDLES\tFIRST\tLAST")

			for _, a := range available {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", a.Symbol, a.Timeframe, a.Count,
					a.First.UTC().Format(time.RFC3339), a.Last.UTC().Format(time.RFC3339))
			}

			return w.Flush()
		},
	}
}
