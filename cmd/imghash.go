package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/ansi"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/imghash"
)

var imghashCmd = &cobra.Command{
	Use:   "imghash",
	Short: "Perceptual average-hash tools",
}

var imghashHashCmd = &cobra.Command{
	Use:   "hash FILE...",
	Short: "Print the 64-bit average hash of each image",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			h, err := imghash.Open(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", h, path)
		}
		return nil
	},
}

var imghashCompareCmd = &cobra.Command{
	Use:   "compare A B",
	Short: "Report how similar two images are",
	Long: `Hashes both images and prints their similarity in [0, 1]. The images are
reported as matching when the similarity reaches the threshold (imghash.threshold
in config, or --threshold).`,
	Args: cobra.ExactArgs(2),
	RunE: runImghashCompare,
}

func init() {
	imghashCompareCmd.Flags().Float64("threshold", -1, "similarity needed to match (default from config)")
	imghashCmd.AddCommand(imghashHashCmd, imghashCompareCmd)
	rootCmd.AddCommand(imghashCmd)
}

func runImghashCompare(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	threshold := s.cfg.ImageHash.Threshold
	if v, _ := cmd.Flags().GetFloat64("threshold"); v >= 0 {
		threshold = v
	}

	sim, err := imghash.CompareFiles(args[0], args[1])
	if err != nil {
		return err
	}
	s.log.Debug("compared images", "a", args[0], "b", args[1], "similarity", sim, "threshold", threshold)
	label := matchLabel(sim, threshold)
	code := ansi.Green
	if label != "match" {
		code = ansi.Red
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%.4f %s\n", sim, ansi.Paint(isTerminal(out), code, label))
	return nil
}

func matchLabel(similarity, threshold float64) string {
	if similarity >= threshold {
		return "match"
	}
	return "differ"
}
