// Command jlcrs imports JLCPCB/EasyEDA catalog parts into a local KiCad
// project library.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "jlcrs",
		Short:         "Import JLCPCB/EasyEDA parts into a KiCad project library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newImportCommand())

	if err := root.Execute(); err != nil {
		log.Println("error:", err)
		os.Exit(1)
	}
}
