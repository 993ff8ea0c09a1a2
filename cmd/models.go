package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"media-transcribe/domain/transcript"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	modelsLanguages bool
	modelsFor       string
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List model tiers and supported languages",
	Long: `List the Whisper model tiers with their size and accuracy tradeoffs.

Larger tiers are more accurate and slower. Tiers ending in .en only handle
English, and tiny is too inaccurate for most other languages; use base or
larger for non-English speech.

Example:
  media-transcribe models
  media-transcribe models --for ja
  media-transcribe models --languages`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&modelsLanguages, "languages", false, "List supported language codes instead of tiers")
	modelsCmd.Flags().StringVar(&modelsFor, "for", "", "Only show tiers suitable for this language")
}

func runModels(cmd *cobra.Command, args []string) error {
	if modelsLanguages {
		return RunLanguagesWithDependencies(os.Stdout)
	}
	return RunModelsWithDependencies(modelsFor, os.Stdout)
}

// RunModelsWithDependencies prints the tier catalog, optionally filtered to
// tiers suitable for language (for testing)
func RunModelsWithDependencies(language string, out OutputWriter) error {
	tiers := transcript.Tiers()
	if language != "" {
		lang, err := transcript.ParseLanguage(language)
		if err != nil {
			return err
		}
		tiers = lo.Filter(tiers, func(info transcript.TierInfo, _ int) bool {
			return info.Tier.SuitableFor(lang)
		})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tPARAMS\tDOWNLOAD\tNOTES")
	for _, info := range tiers {
		tier := info.Tier.String()
		if info.Tier == transcript.DefaultModelTier {
			tier += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tier, info.Parameters, info.SizeLabel, info.Description)
	}
	return w.Flush()
}

// RunLanguagesWithDependencies prints the supported language codes (for testing)
func RunLanguagesWithDependencies(out OutputWriter) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tLANGUAGE")
	for _, code := range transcript.Languages() {
		fmt.Fprintf(w, "%s\t%s\n", code, code.Name())
	}
	return w.Flush()
}
