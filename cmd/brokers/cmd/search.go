package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"brokersearch/server/formatting"
	"brokersearch/server/services"
)

type searchOptions struct {
	days int
	json bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	searchCmd := &cobra.Command{
		Use:   "search <запрос>",
		Short: "Поиск по объекту с алиасами, синонимами и нечеткой подсказкой",
		Long: "Поиск как в боте: текст, начинающийся с «район», ищется по району,\n" +
			"остальное по названию объекта.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := root.searchService(opts.days)
			if err != nil {
				return err
			}

			result, err := service.Route(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return printMessages(cmd.OutOrStdout(), formatting.RoutedReplies(result))
		},
	}

	searchCmd.Flags().IntVarP(&opts.days, "days", "d", services.DefaultSearchDays, "Период в днях")
	searchCmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Вывод в JSON")

	return searchCmd
}
