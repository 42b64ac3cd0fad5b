package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/internal/tone"
)

func analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <pinyin>...",
		Short: "Split pinyin readings into segmental form and tone",
		Long: `Print "input<TAB>segmental<TAB>tone" for each argument. Tone marks and
trailing digits are both accepted; a syllable without either is tone 5.`,
		Example: "  idsload analyze mǎ lü4 ma",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			var failed int
			for _, s := range args {
				syl, err := tone.Parse(s)
				if err != nil {
					failed++
					fmt.Fprintln(errOut, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%d\n", s, syl.Segmental, syl.Tone)
			}

			if failed > 0 {
				return fmt.Errorf("%d reading(s) could not be analyzed", failed)
			}
			return nil
		},
	}
}
