// layoutc compiles and inspects slide layout sources from the command line,
// and bulk-imports them into a layout store.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rahilansari261/ai-slides-sub000/declscan"
)

func main() {
	app := &cli.App{
		Name:  "layoutc",
		Usage: "compile and inspect slide layout sources",
		Commands: []*cli.Command{
			compileCommand,
			declsCommand,
			importCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "layoutc:", err)
		os.Exit(1)
	}
}

var scanFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "suffix",
		Usage: "identifier suffix that marks a schema declaration",
		Value: declscan.DefaultSuffix,
	},
	&cli.StringSliceFlag{
		Name:  "entry",
		Usage: "entry-point declaration names tried first",
	},
}

func scanOptions(cliCtx *cli.Context) []declscan.Option {
	var opts []declscan.Option
	if suffix := cliCtx.String("suffix"); suffix != "" {
		opts = append(opts, declscan.WithSuffix(suffix))
	}
	if names := cliCtx.StringSlice("entry"); len(names) > 0 {
		opts = append(opts, declscan.WithEntryNames(names...))
	}
	return opts
}

// readSource reads a layout source file, with "-" meaning stdin.
func readSource(path string) (string, error) {
	if path == "-" {
		bs, err := io.ReadAll(os.Stdin)
		return string(bs), err
	}
	bs, err := os.ReadFile(path)
	return string(bs), err
}
