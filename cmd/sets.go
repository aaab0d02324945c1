package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/setop"
)

var setsCmd = &cobra.Command{
	Use:   "sets OP",
	Short: "Apply a set operation to two comma-separated sets",
	Long: `Applies union, intersection, difference, or symmetric-difference to the
sets given by --a and --b and prints the members of the result, sorted.`,
	Example:   "  mcu sets difference --a x,y,z --b y",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"union", "intersection", "difference", "symmetric-difference"},
	RunE:      runSets,
}

func init() {
	setsCmd.Flags().StringSlice("a", nil, "members of the left set")
	setsCmd.Flags().StringSlice("b", nil, "members of the right set")
	rootCmd.AddCommand(setsCmd)
}

func runSets(cmd *cobra.Command, args []string) error {
	a, _ := cmd.Flags().GetStringSlice("a")
	b, _ := cmd.Flags().GetStringSlice("b")

	members, err := applySetOp(args[0], a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "{%s}\n", strings.Join(members, ", "))
	return nil
}

func applySetOp(name string, a, b []string) ([]string, error) {
	op, err := setop.ParseOp(name)
	if err != nil {
		return nil, err
	}
	result := setop.Slice[string](setop.NewView[string](op, setop.NewHashSet(a...), setop.NewHashSet(b...)))
	slices.Sort(result)
	return result, nil
}
