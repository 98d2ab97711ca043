package cmd

import (
	"github.com/spf13/cobra"

	"brokersearch/districts"
	"brokersearch/importer"
	"brokersearch/normalization"
	"brokersearch/server/services"
)

// rootOptions общие флаги всех команд
type rootOptions struct {
	file          string
	districtsPath string
	referencePath string
}

// NewRootCmd создает корневую команду со всеми подкомандами
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "brokers",
		Short:         "Поиск брокеров, проводивших показы объектов недвижимости",
		Long:          "Поиск по журналу показов: по объекту, по району и простой воспроизводимый поиск для скриптов.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.file, "file", "f", "data/showings.xlsx", "Журнал показов (.xlsx или .csv)")
	f.StringVar(&opts.districtsPath, "districts", "data/districts.json", "Справочник районов")
	f.StringVar(&opts.referencePath, "reference", "", "JSON с алиасами и синонимами вместо встроенных")

	root.AddCommand(newFindCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newDistrictCmd(opts))
	root.AddCommand(newAreasCmd(opts))
	root.AddCommand(newImportCmd(opts))

	return root
}

// Execute запускает CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// searchService сервис поиска поверх файлов из флагов
func (o *rootOptions) searchService(days int) (*services.SearchService, error) {
	tables, err := normalization.LoadReferenceTables(o.referencePath)
	if err != nil {
		return nil, err
	}
	return services.NewSearchService(
		importer.NewFileSource(o.file),
		districts.NewFileStore(o.districtsPath),
		tables,
		services.WithDays(days),
	), nil
}
