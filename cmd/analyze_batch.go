package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/utils"
	"github.com/spf13/cobra"
)

var (
	ifOutDir string
	ifSheet  string
	ifQuiet  bool
)

var inspectFilesCmd = &cobra.Command{
	Use:   "inspect-files <files...>",
	Short: "Summarize arbitrary CSV/TSV/XLSX survey extracts with progress",
	Long: `Summarize files that are not part of the configured survey, e.g. a new extract before
it replaces one of the three inputs. Globs are expanded; --out-dir writes one
<name>.summary.md per file and never overwrites an existing summary.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		opt, err := summaryOptions(cmd)
		if err != nil {
			return err
		}
		if cfg == nil {
			return errNoConfig
		}
		readOpt, err := cfg.ReadOptions()
		if err != nil {
			return err
		}
		if ifSheet != "" {
			readOpt.Sheet = ifSheet
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !ifQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			base := filepath.Base(path)
			name := strings.TrimSuffix(base, filepath.Ext(base))
			t, err := dataset.ReadFile(name, path, readOpt)
			if err != nil {
				return err
			}
			md := analysis.Summarize(t, opt).Markdown()

			if ifOutDir == "" {
				if !ifQuiet {
					fmt.Fprintln(out, md)
				}
				continue
			}
			outFile := filepath.Join(ifOutDir, name+".summary.md")
			if _, statErr := os.Stat(outFile); statErr == nil {
				idx := 2
				for {
					cand := filepath.Join(ifOutDir, fmt.Sprintf("%s__%d.summary.md", name, idx))
					if _, err := os.Stat(cand); os.IsNotExist(err) {
						if !ifQuiet {
							fmt.Fprintf(out, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(cand))
						}
						outFile = cand
						break
					}
					idx++
				}
			}
			if err := utils.SafeWriteFile(outFile, []byte(md)); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !ifQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", outFile)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectFilesCmd)
	addSummaryFlags(inspectFilesCmd)
	inspectFilesCmd.Flags().StringVar(&ifOutDir, "out-dir", "", "directory for <name>.summary.md files (default: print)")
	inspectFilesCmd.Flags().StringVar(&ifSheet, "sheet", "", "XLSX: sheet name (default: configured sheet, else first)")
	inspectFilesCmd.Flags().BoolVar(&ifQuiet, "quiet", false, "suppress progress and non-essential output")
}
