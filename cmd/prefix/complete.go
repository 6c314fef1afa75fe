package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCompleteCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "complete <prefix>",
		Short: "List stored words starting with a prefix",
		Long: `List stored words starting with a prefix, one per line, in ascending
code point order. A word equal to the prefix is listed first.

--limit defaults to search.default_limit; 0 lists every match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Search.DefaultLimit
			}
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}

			d, err := a.openDictionary()
			if err != nil {
				return err
			}
			defer a.closeDictionary(d)

			var words []string
			if limit == 0 {
				words = d.CompleteAll(args[0])
			} else if words, err = d.Complete(args[0], limit); err != nil {
				return err
			}

			a.log.Debug().Str("prefix", args[0]).Int("limit", limit).Int("matches", len(words)).Msg("complete")
			out := cmd.OutOrStdout()
			for _, w := range words {
				fmt.Fprintln(out, w)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of words to list (0 = all)")
	return cmd
}
