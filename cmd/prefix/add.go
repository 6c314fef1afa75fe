package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miajio/prefix/pkg/dictionary"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		freq float64
		pos  string
	)

	cmd := &cobra.Command{
		Use:   "add <word>...",
		Short: "Add words to the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("freq") {
				freq = a.cfg.Learn.Frequency
			}
			if !cmd.Flags().Changed("pos") {
				pos = a.cfg.Learn.Pos
			}

			entries := make([]dictionary.DictEntry, len(args))
			for i, w := range args {
				entries[i] = dictionary.DictEntry{Content: w, Frequency: freq, Pos: pos}
			}

			d, err := a.openDictionary()
			if err != nil {
				return err
			}
			defer a.closeDictionary(d)

			added, err := d.AddWords(entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d new word(s), %d total\n", added, d.Len())
			return nil
		},
	}

	cmd.Flags().Float64Var(&freq, "freq", 0, "word frequency (default learn.frequency)")
	cmd.Flags().StringVar(&pos, "pos", "", "part of speech (default learn.pos)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a word list, one word per line",
		Long: `Import a word list. Each line holds a word, optionally followed by
a frequency and a part of speech separated by whitespace:

  cart
  car 120 n
  # comments and blank lines are skipped`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readWordList(args[0], a.cfg.Learn.Frequency, a.cfg.Learn.Pos)
			if err != nil {
				return err
			}

			d, err := a.openDictionary()
			if err != nil {
				return err
			}
			defer a.closeDictionary(d)

			added, err := d.AddWords(entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d line(s), %d new word(s), %d total\n", len(entries), added, d.Len())
			return nil
		},
	}
}

// readWordList 读取词表文件, 缺省的词频与词性使用 freq 和 pos
func readWordList(filename string, freq float64, pos string) ([]dictionary.DictEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []dictionary.DictEntry
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		entry := dictionary.DictEntry{Content: fields[0], Frequency: freq, Pos: pos}
		if len(fields) > 1 {
			if entry.Frequency, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, fmt.Errorf("%s:%d: invalid frequency %q", filename, n, fields[1])
			}
		}
		if len(fields) > 2 {
			entry.Pos = fields[2]
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return entries, nil
}
