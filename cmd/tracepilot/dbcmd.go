package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mevtrace/engine/store"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var dbCommand = &cli.Command{
	Name:  "db",
	Usage: "Inspect the engine's store out of band",
	Subcommands: []*cli.Command{
		dbStatsCommand,
		dbInspectCommand,
	},
}

var dbStatsCommand = &cli.Command{
	Name:  "stats",
	Usage: "Print the key count of every table",
	Action: func(c *cli.Context) error {
		st, err := store.Open(c.String(dbPathFlag.Name))
		if err != nil {
			return fmt.Errorf("db stats: %w", err)
		}
		defer st.Close()

		counts, err := st.TableStats()
		if err != nil {
			return fmt.Errorf("db stats: %w", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Table", "Keys"})
		for _, name := range store.TableNames {
			table.Append([]string{name, fmt.Sprintf("%d", counts[name])})
		}
		table.Render()
		return nil
	},
}

var dbInspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "Print a single record from a table",
	ArgsUsage: "<table> <key>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 2 {
			return fmt.Errorf("db inspect: usage: db inspect %s", dbInspectCommand.ArgsUsage)
		}
		table, key := c.Args().Get(0), c.Args().Get(1)

		st, err := store.Open(c.String(dbPathFlag.Name))
		if err != nil {
			return fmt.Errorf("db inspect: %w", err)
		}
		defer st.Close()

		record, ok, err := st.Inspect(table, key)
		if err != nil {
			return fmt.Errorf("db inspect: %w", err)
		}
		if !ok {
			fmt.Printf("no record for %s[%s]\n", table, key)
			return nil
		}

		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("db inspect: marshal record: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
