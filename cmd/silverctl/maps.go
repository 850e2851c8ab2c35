package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rkaran/silverdash/internal/format"
)

func newMapCmd(c *cli) *cobra.Command {
	var column, out string
	var keep bool

	cmd := &cobra.Command{
		Use:   "map <file.geojson>",
		Short: "Join a GeoJSON file with the state table and render it",
		Long: `Upload a GeoJSON file, join its features with the state purchase
table by name, and save the choropleth as an SVG file.

The upload is deleted afterwards unless --keep is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read geojson: %w", err)
			}

			ctx, cancel := c.requestContext(cmd)
			defer cancel()
			client := c.client()

			up, err := client.UploadMap(ctx, filepath.Base(args[0]), data)
			if err != nil {
				return withHints(err)
			}
			if !keep {
				defer func() {
					if err := client.DeleteMap(ctx, up.ID); err != nil {
						fmt.Fprintln(c.out, warnStyle.Render("! delete upload: "+err.Error()))
					}
				}()
			}
			fmt.Fprintf(c.out, "uploaded %s: %d features, columns %s\n", up.ID, up.Features, strings.Join(up.Columns, ", "))

			res, err := client.Join(ctx, up.ID, column)
			if err != nil {
				return withHints(err)
			}
			printTitle(c.out, fmt.Sprintf("Joined on %s: %d of %d features matched", res.Column, res.Matched, res.Total))
			printWarnings(c.out, res.Warnings)
			if len(res.UnmatchedNames) > 0 {
				fmt.Fprintln(c.out, labelStyle.Render("Unmatched:"), strings.Join(res.UnmatchedNames, ", "))
			}

			rows := make([][]string, 0, len(res.Records))
			for _, r := range res.Records {
				qty := "no data"
				if r.QuantityKg != nil {
					qty = format.Number(*r.QuantityKg, 0)
				}
				rows = append(rows, []string{r.Name, qty})
			}
			printTable(c.out, []string{"Feature", "Silver (kg)"}, rows)

			if out == "" {
				return nil
			}
			svg, err := client.MapSVG(ctx, up.ID, res.Column)
			if err != nil {
				return withHints(err)
			}
			if err := os.WriteFile(out, svg, 0o644); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
			fmt.Fprintf(c.out, "wrote %s (%d bytes)\n", out, len(svg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "feature property holding the state name")
	cmd.Flags().StringVarP(&out, "out", "o", "silver_map.svg", "SVG output path, empty to skip")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the upload on the server")
	return cmd
}
