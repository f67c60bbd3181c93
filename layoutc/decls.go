package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/rahilansari261/ai-slides-sub000/declscan"
)

var declsCommand = &cli.Command{
	Name:      "decls",
	Usage:     "list the schema declarations found in a layout source",
	ArgsUsage: "<file>",
	Flags:     scanFlags,
	Action: func(cliCtx *cli.Context) error {
		if cliCtx.NArg() != 1 {
			return errors.New("expected exactly one source file")
		}
		source, err := readSource(cliCtx.Args().First())
		if err != nil {
			return err
		}

		opts := scanOptions(cliCtx)
		tbl := declscan.BuildTable(source, opts...)
		mainName, _, _ := declscan.SelectMain(source, tbl, opts...)

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, name := range tbl.Names() {
			text, _ := tbl.Lookup(name)
			marker := " "
			if name == mainName {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s %s\t%s\n", marker, name, ellipsis(text, 72))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if n := tbl.Skipped(); n > 0 {
			fmt.Fprintf(os.Stderr, "%d declaration(s) skipped as unbalanced\n", n)
		}
		return nil
	},
}

func ellipsis(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
