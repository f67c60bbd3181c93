package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/rahilansari261/ai-slides-sub000/layoutschema"
	"github.com/rahilansari261/ai-slides-sub000/layoutstore"
)

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "compile every layout source in a directory into the store",
	ArgsUsage: "<dir>",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "db",
			Usage: "path of the layout store",
			Value: "layouts.db",
		},
	}, scanFlags...),
	Action: func(cliCtx *cli.Context) error {
		if cliCtx.NArg() != 1 {
			return errors.New("expected a directory of layout sources")
		}
		dir := cliCtx.Args().First()

		store, err := layoutstore.Open(cliCtx.String("db"))
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}

		opts := scanOptions(cliCtx)
		imported, fallbacks := 0, 0
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !isLayoutFile(name) {
				continue
			}
			bs, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			source := string(bs)

			res := layoutschema.CompileSource(source, opts...)
			if res.Fallback {
				fallbacks++
			}

			rec := recordFromSource(source, name)
			rec.Schema = res.Doc
			if err := store.Put(rec); err != nil {
				return fmt.Errorf("import %s: %w", name, err)
			}
			fmt.Printf("imported %s as %s\n", name, rec.ID)
			imported++
		}

		fmt.Printf("%d layout(s) imported, %d with the fallback document\n", imported, fallbacks)
		return nil
	},
}

func isLayoutFile(name string) bool {
	switch filepath.Ext(name) {
	case ".ts", ".tsx":
		return true
	}
	return false
}

// recordFromSource fills the record's identity from the source's own
// metadata, falling back to the file name and a random id.
func recordFromSource(source, fileName string) layoutstore.Record {
	meta := layoutschema.ExtractMeta(source)
	id := meta.ID
	if id == "" {
		id = uuid.NewString()
	}
	name := meta.Name
	if name == "" {
		name = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}
	return layoutstore.Record{
		ID:          id,
		Name:        name,
		Description: meta.Description,
		Source:      source,
	}
}
