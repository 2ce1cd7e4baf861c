package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var dumpOut string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the database schema to a catalog YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := introspectCatalog(cmd.Context())
		if err != nil {
			return err
		}
		if err := cat.Validate(); err != nil {
			return err
		}

		if dumpOut == "" {
			data, err := cat.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := cat.Save(dumpOut); err != nil {
			return err
		}
		log.Printf("Catalog written to %s", dumpOut)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "Catalog file to write (default: stdout)")
}
