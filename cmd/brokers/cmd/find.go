package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"brokersearch/importer"
	"brokersearch/server/services"
)

const notFoundLine = "(не найдено)"

type findOptions struct {
	object        string
	days          int
	match         string
	excludeStatus string
	json          bool
}

func newFindCmd(root *rootOptions) *cobra.Command {
	opts := &findOptions{}

	findCmd := &cobra.Command{
		Use:   "find",
		Short: "Брокеры по объекту без алиасов и синонимов",
		Long: "Простой воспроизводимый поиск: название объекта совпадает с запросом (exact)\n" +
			"или содержит его (contains) после нормализации.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, root, opts)
		},
	}

	f := findCmd.Flags()
	f.StringVarP(&opts.object, "object", "o", "", "Название объекта")
	f.IntVarP(&opts.days, "days", "d", 14, "Период в днях")
	f.StringVarP(&opts.match, "match", "m", string(services.MatchContains), "Режим: exact или contains")
	f.StringVarP(&opts.excludeStatus, "exclude-status", "e", "", "Исключить показы с этим статусом")
	f.BoolVarP(&opts.json, "json", "j", false, "Вывод в JSON")
	_ = findCmd.MarkFlagRequired("object")

	return findCmd
}

func runFind(cmd *cobra.Command, root *rootOptions, opts *findOptions) error {
	mode, err := services.ParseMatchMode(opts.match)
	if err != nil {
		return err
	}

	set, err := importer.LoadShowings(root.file)
	if err != nil {
		return err
	}

	result, err := services.ResolveObject(set, services.ResolveObjectRequest{
		Object:        opts.object,
		Days:          opts.days,
		Mode:          mode,
		ExcludeStatus: opts.excludeStatus,
	}, time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		if result.Brokers == nil {
			result.Brokers = []string{}
		}
		return printJSON(out, result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nОбъект: %s\n", result.Object)
	fmt.Fprintf(&b, "Период: %d дней\n", result.Days)
	fmt.Fprintf(&b, "Режим: %s\n", result.Match)
	fmt.Fprintf(&b, "\nБрокеры (%d):\n", len(result.Brokers))
	if len(result.Brokers) == 0 {
		b.WriteString("  " + notFoundLine + "\n")
	}
	for _, broker := range result.Brokers {
		b.WriteString("  - " + broker + "\n")
	}

	_, err = fmt.Fprint(out, b.String())
	return err
}
