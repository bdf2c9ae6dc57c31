package main

import (
	"context"
	"log"
	"os"

	"github.com/SparkyTD/jlcrs/importer"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var update bool
	var name string
	var description string
	var root string

	cmd := &cobra.Command{
		Use:   "import <LCSC-code>",
		Short: "Import a single LCSC-coded part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, err := os.Getwd()
			if err != nil {
				return err
			}

			deps := importer.Deps{
				FS:      importer.OSFilesystem{},
				Fetcher: importer.NewHTTPFetcher(),
				Step:    importer.NoopStepBoundingBox{},
			}
			opts := importer.Options{
				Code:        args[0],
				Update:      update,
				Name:        name,
				Description: description,
				Root:        root,
				ProjectRoot: projectRoot,
			}

			log.Printf("importing %s...", opts.Code)
			if err := importer.Import(context.Background(), deps, opts); err != nil {
				return err
			}
			log.Printf("imported %s into library %q", opts.Code, libraryNameOrDefault(name))
			return nil
		},
	}

	cmd.Flags().BoolVar(&update, "update", false, "overwrite an already-imported component")
	cmd.Flags().StringVar(&name, "name", "", "library name (default JLCPCB)")
	cmd.Flags().StringVar(&description, "description", "", "library-table description")
	cmd.Flags().StringVar(&root, "root", "", "project-relative directory to hold the library")

	return cmd
}

func libraryNameOrDefault(name string) string {
	if name == "" {
		return importer.DefaultLibraryName
	}
	return name
}
