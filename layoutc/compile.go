package main

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/rahilansari261/ai-slides-sub000/layoutschema"
)

var compileCommand = &cli.Command{
	Name:      "compile",
	Usage:     "compile a layout source into its schema document",
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

		res := layoutschema.CompileSource(source, scanOptions(cliCtx)...)
		if res.Fallback {
			fmt.Fprintln(os.Stderr, "no usable declaration, emitting the fallback document")
		} else {
			fmt.Fprintf(os.Stderr, "compiled %s (%d declarations, %d skipped)\n",
				res.Main, res.Decls, res.Skipped)
		}

		bs, err := json.MarshalIndent(res.Doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(bs))
		return nil
	},
}
