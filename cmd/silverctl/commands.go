package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rkaran/silverdash/internal/api"
	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/version"
)

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.requestContext(cmd)
			defer cancel()

			h, err := c.client().Health(ctx)
			if err != nil {
				return err
			}
			printTitle(c.out, "silverdash "+h.Status)
			fmt.Fprintf(c.out, "server %s\n", h.Version)

			names := make([]string, 0, len(h.Components))
			for name := range h.Components {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(c.out, "%s: %v\n", labelStyle.Render(name), h.Components[name])
			}
			if h.Status == "unhealthy" {
				return fmt.Errorf("server is unhealthy")
			}
			return nil
		},
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the silverctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, "silverctl", version.String())
			return nil
		},
	}
}

func newQuoteCmd(c *cli) *cobra.Command {
	var params api.QuoteParams

	cmd := &cobra.Command{
		Use:     "quote",
		Short:   "Price a silver purchase",
		Example: `  silverctl quote --weight 2 --unit kilograms --price 80 --currency USD`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.requestContext(cmd)
			defer cancel()

			q, err := c.client().Quote(ctx, params)
			if err != nil {
				return withHints(err)
			}
			printTitle(c.out, q.Summary)
			printMetrics(c.out, q.Metrics)

			rows := make([][]string, 0, len(q.Breakdown))
			for _, b := range q.Breakdown {
				rows = append(rows, []string{b.Description, b.Value})
			}
			printTable(c.out, []string{"Description", "Value"}, rows)
			return nil
		},
	}

	cmd.Flags().Float64Var(&params.Weight, "weight", 1, "weight of silver")
	cmd.Flags().StringVar(&params.Unit, "unit", "grams", "grams or kilograms")
	cmd.Flags().Float64Var(&params.PricePerGram, "price", 75, "price per gram in INR")
	cmd.Flags().StringVar(&params.Currency, "currency", "INR", "currency to convert into")
	return cmd
}

func newHistoryCmd(c *cli) *cobra.Command {
	var bracket string
	var showPoints bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show silver price history for a price bracket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.requestContext(cmd)
			defer cancel()

			h, err := c.client().History(ctx, bracket)
			if err != nil {
				return withHints(err)
			}
			printTitle(c.out, fmt.Sprintf("Silver prices: %s (%d days)", h.Label, h.Stats.Count))
			printMetrics(c.out, h.Metrics)

			if showPoints {
				rows := make([][]string, 0, len(h.Points))
				for _, p := range h.Points {
					rows = append(rows, []string{p.Date.Format("2006-01-02"), format.RupeesWhole(p.PriceINRPerKg)})
				}
				printTable(c.out, []string{"Date", "INR/kg"}, rows)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bracket, "bracket", "b", "all", "all, le20000, between or ge30000")
	cmd.Flags().BoolVar(&showPoints, "points", false, "print every day of the series")
	return cmd
}

func newStatesCmd(c *cli) *cobra.Command {
	var search string
	var top int

	cmd := &cobra.Command{
		Use:   "states",
		Short: "Show silver purchases by state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.requestContext(cmd)
			defer cancel()
			client := c.client()

			if top > 0 {
				resp, err := client.TopStates(ctx, top)
				if err != nil {
					return withHints(err)
				}
				printTitle(c.out, fmt.Sprintf("Top %d states", resp.N))
				printTable(c.out, []string{"State", "Silver (kg)"}, stateRows(resp.Rows))
				return nil
			}

			resp, err := client.States(ctx, search)
			if err != nil {
				return withHints(err)
			}
			printTitle(c.out, "State purchases ("+joinNonEmpty(", ", resp.Source, resp.Origin)+")")
			printWarnings(c.out, resp.Warnings)
			printMetrics(c.out, resp.Metrics)
			printTable(c.out, []string{"State", "Silver (kg)"}, stateRows(resp.Rows))
			if len(resp.Rows) > 0 {
				fmt.Fprintf(c.out, "Highest: %s (%s kg), lowest: %s (%s kg), difference %s kg\n",
					resp.Insights.Highest.State, format.Number(resp.Insights.Highest.QuantityKg, 0),
					resp.Insights.Lowest.State, format.Number(resp.Insights.Lowest.QuantityKg, 0),
					format.Number(resp.Insights.DifferenceKg, 0),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter states by name")
	cmd.Flags().IntVar(&top, "top", 0, "show only the n largest purchasers")
	return cmd
}

func newReloadCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the state purchase table on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.requestContext(cmd)
			defer cancel()

			resp, err := c.client().ReloadStates(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "reloaded %d rows from %s\n", resp.Rows, joinNonEmpty(" ", resp.Source, resp.Origin))
			printWarnings(c.out, resp.Warnings)
			return nil
		},
	}
}

func newJanuaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "january",
		Short: "Show the January daily purchase analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.requestContext(cmd)
			defer cancel()

			resp, err := c.client().January(ctx)
			if err != nil {
				return err
			}
			printTitle(c.out, "January silver purchases")
			printMetrics(c.out, resp.Metrics)

			rows := make([][]string, 0, len(resp.Weekly))
			for _, w := range resp.Weekly {
				rows = append(rows, []string{w.Label, format.Number(w.TotalKg, 0)})
			}
			printTable(c.out, []string{"Week", "Silver (kg)"}, rows)
			printMetrics(c.out, resp.GrowthMetrics)
			return nil
		},
	}
}

// withHints appends the server's hints to an API error.
func withHints(err error) error {
	apiErr, ok := err.(*api.APIError)
	if !ok || len(apiErr.Hints) == 0 {
		return err
	}
	return fmt.Errorf("%w\n  %s", err, strings.Join(apiErr.Hints, "\n  "))
}
