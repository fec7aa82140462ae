package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/opsboard/internal/app"
	"github.com/five82/opsboard/internal/table"
	"github.com/five82/opsboard/internal/ui"
)

type tableFlags struct {
	filters  []string
	sort     string
	desc     bool
	page     int
	pageSize int
}

func newTableCmd(root *rootFlags) *cobra.Command {
	var flags tableFlags
	cmd := &cobra.Command{
		Use:   "table <" + strings.Join(ui.Entities, "|") + ">",
		Short: "Print one page of a table",
		Long: `Print one page of a console table to stdout.

Filters use the console's filter groups: repeat --filter for OR within a
group, combine groups for AND.

  opsboard table cases --filter customers="Apex Trading" --sort pickupDate --desc
  opsboard table taxes --filter rate=10% --page 2`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: ui.Entities,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := flags.query()
			if err != nil {
				return err
			}
			cfg, ds, err := app.Load(root.configPath)
			if err != nil {
				return err
			}
			out, err := ui.PrintTable(args[0], ds, cfg, query)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&flags.filters, "filter", nil, "filter as group=value (repeatable)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "column key to sort by")
	cmd.Flags().BoolVar(&flags.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page number (clamped)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "rows per page (default from config)")
	return cmd
}

func (f tableFlags) query() (ui.TableQuery, error) {
	sel, err := table.ParseSelection(f.filters)
	if err != nil {
		return ui.TableQuery{}, fmt.Errorf("--filter: %w", err)
	}
	if f.desc && f.sort == "" {
		return ui.TableQuery{}, fmt.Errorf("--desc needs --sort")
	}
	return ui.TableQuery{
		Filter:   sel,
		Sort:     f.sort,
		Desc:     f.desc,
		Page:     f.page,
		PageSize: f.pageSize,
	}, nil
}
