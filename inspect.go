package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"scrollstage/internal/domain"
	"scrollstage/internal/effect"
	"scrollstage/internal/position"
	"scrollstage/internal/version"
)

func newCursorCmd() *cobra.Command {
	var (
		distance float64
		rng      float64
		items    int
		target   int
	)

	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Print the cursor a scroll position maps to",
		Example: "  scrollstage cursor --distance 399 --range 400 --items 5\n" +
			"  scrollstage cursor --range 1600 --items 4 --target 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := map[string]any{}
			if cmd.Flags().Changed("target") {
				out["target_offset"] = position.TargetOffset(target, rng, items)
			} else {
				cur, err := position.Compute(distance, rng, items)
				if err != nil {
					return err
				}
				out["cursor"] = cur
				out["label"] = domain.StepLabel(cur.ActiveIndex, items)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().Float64Var(&distance, "distance", 0, "Scrolled distance in px")
	cmd.Flags().Float64Var(&rng, "range", 0, "Scroll range in px (container minus viewport)")
	cmd.Flags().IntVar(&items, "items", 0, "Number of items")
	cmd.Flags().IntVar(&target, "target", 0, "Print the scroll offset of this index instead")
	_ = cmd.MarkFlagRequired("range")
	_ = cmd.MarkFlagRequired("items")
	return cmd
}

func newStylesCmd(opts *rootOptions) *cobra.Command {
	var (
		index      int
		dragOffset float64
	)

	cmd := &cobra.Command{
		Use:   "styles <section>",
		Short: "Print the animation targets of a section's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			section, ok := cfg.Section(args[0])
			if !ok {
				return fmt.Errorf("no section named %q", args[0])
			}
			n := len(section.Items)
			if index < 0 || index >= n {
				return fmt.Errorf("index %d out of range [0, %d)", index, n)
			}

			w := cmd.OutOrStdout()
			eff := domain.Effect(section.Effect)
			for i, p := range effect.ForItems(n, index, eff) {
				fmt.Fprintf(w, "%d %-6s %s\n", i, domain.RelationOf(i, index), p.CSS())
			}
			if section.Options().Draggable {
				fmt.Fprintf(w, "track %s\n", effect.Track(index, dragOffset, dragOffset != 0).CSS())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "Active item")
	cmd.Flags().Float64Var(&dragOffset, "drag", 0, "Live drag offset in px for the track")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Module(), version.Current())
			return err
		},
	}
}
