package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brokersearch/database"
	"brokersearch/importer"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var dbPath string

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Загрузить журнал показов в SQLite",
		Long:  "Читает файл из --file и заменяет им снимок в базе. Сервер читает базу при SHOWINGS_SOURCE=sqlite.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := importer.NewFileSource(root.file).Load(cmd.Context())
			if err != nil {
				return err
			}

			db, err := database.NewShowingsDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			info, err := db.ReplaceSnapshot(cmd.Context(), set)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Импортировано %d показов из %s в %s\n", info.RowsCount, root.file, dbPath)
			return err
		},
	}

	importCmd.Flags().StringVar(&dbPath, "db", "data/showings.db", "Путь к базе SQLite")

	return importCmd
}
