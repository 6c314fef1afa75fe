package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLearnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "learn <file>",
		Short: "Segment a text file and add the words not yet in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			d, err := a.openDictionary()
			if err != nil {
				return err
			}
			defer a.closeDictionary(d)

			learned, err := d.LearnFromText(string(text))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range learned {
				fmt.Fprintln(out, w)
			}
			a.log.Info().Int("learned", len(learned)).Int("total", d.Len()).Msg("learn finished")
			return nil
		},
	}
}
