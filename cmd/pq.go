package cmd

import (
	"cmp"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/pq"
)

var pqCmd = &cobra.Command{
	Use:   "pq",
	Short: "Indexed priority queue tools",
}

var pqSortCmd = &cobra.Command{
	Use:   "sort N...",
	Short: "Print distinct integers in priority order",
	Long: `Builds an indexed min-priority queue from the given integers and pops it
empty. Duplicates are dropped since the queue holds each element once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPQSort,
}

func init() {
	pqSortCmd.Flags().Bool("desc", false, "pop largest first")
	pqSortCmd.Flags().IntP("top", "n", 0, "stop after this many values (0 = all)")
	pqCmd.AddCommand(pqSortCmd)
	rootCmd.AddCommand(pqCmd)
}

func runPQSort(cmd *cobra.Command, args []string) error {
	desc, _ := cmd.Flags().GetBool("desc")
	top, _ := cmd.Flags().GetInt("top")

	values, err := parseInts(args)
	if err != nil {
		return err
	}
	writeInts(cmd.OutOrStdout(), prioritySort(values, desc, top))
	return nil
}

func parseInts(args []string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("pq: %q is not an integer", a)
		}
		values = append(values, n)
	}
	return values, nil
}

// prioritySort pops up to top values (all when top <= 0) from a queue
// built over values.
func prioritySort(values []int, desc bool, top int) []int {
	order := cmp.Compare[int]
	if desc {
		order = func(a, b int) int { return cmp.Compare(b, a) }
	}
	q := pq.FromSlice(values, order)
	if top <= 0 || top > q.Len() {
		top = q.Len()
	}
	out := make([]int, 0, top)
	for range top {
		v, _ := q.Pop()
		out = append(out, v)
	}
	return out
}

func writeInts(w io.Writer, values []int) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}
