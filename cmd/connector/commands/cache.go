package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the persisted project configuration cache",
	}
	cmd.AddCommand(c.newCacheShowCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	return cmd
}

func (c *CLI) newCacheShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List cached projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.app.CacheRecords()
			if err != nil {
				return err
			}
			if path := c.app.CacheFile(); path != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cache file: %s\n", path)
			}
			if len(records) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PROJECT\tTARGET\tINCLUDES\tUPDATED")
			for _, r := range records {
				updated := "-"
				if !r.Timestamp.IsZero() {
					updated = humanize.Time(r.Timestamp)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.ProjectDir, r.Target, strings.Join(r.IncludePaths, " "), updated)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached projects",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.ClearCache()
		},
	}
}
