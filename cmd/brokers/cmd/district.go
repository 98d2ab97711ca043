package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brokersearch/server/formatting"
	"brokersearch/server/services"
)

func newDistrictCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	districtCmd := &cobra.Command{
		Use:   "district <район>",
		Short: "Брокеры по всем объектам района",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := root.searchService(opts.days)
			if err != nil {
				return err
			}

			result, err := service.SearchByDistrict(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return printMessages(cmd.OutOrStdout(), formatting.DistrictReplies(result))
		},
	}

	districtCmd.Flags().IntVarP(&opts.days, "days", "d", services.DefaultSearchDays, "Период в днях")
	districtCmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Вывод в JSON")

	return districtCmd
}

func newAreasCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "Список известных районов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := root.searchService(services.DefaultSearchDays)
			if err != nil {
				return err
			}
			areas, err := service.ListAreas(cmd.Context())
			if err != nil {
				return err
			}
			for _, area := range areas {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), area); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
