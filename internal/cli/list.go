package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figforge/pkg/figure"
)

// listEntry is the JSON form of a listed figure.
type listEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Tags        []string `json:"tags,omitempty"`
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		tag    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := listFigures(c.Registry, tag)
			w := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				printWarning("No figures match tag %q", tag)
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%dx%d\t%s\t%s\n",
					styleName.Render(e.Name), e.Width, e.Height,
					styleDim.Render(strings.Join(e.Tags, ",")), e.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only list figures with this tag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")

	return cmd
}

func listFigures(reg *figure.Registry, tag string) []listEntry {
	entries := []listEntry{}
	for _, f := range reg.All() {
		tags := figure.TagsOf(f)
		if tag != "" && !slices.Contains(tags, tag) {
			continue
		}
		w, h := f.Size()
		entries = append(entries, listEntry{
			Name:        f.Name(),
			Description: f.Description(),
			Width:       w,
			Height:      h,
			Tags:        tags,
		})
	}
	return entries
}
