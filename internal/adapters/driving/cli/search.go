package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/core/services"
)

var (
	searchLimit int
	searchJSON  bool
	searchHTML  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the vector index",
	Long: `Submits a natural-language query to the backend and prints the ranked
results. Query terms longer than two characters are highlighted when
writing to a terminal.

Words after the command are joined with spaces, so quoting is optional:
  seekr search modern apartment with balcony`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchHTML, "html", false, "highlight with HTML spans instead of terminal styling")
	searchCmd.MarkFlagsMutuallyExclusive("json", "html")
	rootCmd.AddCommand(searchCmd)
}

// jsonResult is one ranked hit in --json output.
type jsonResult struct {
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
	Percentage string  `json:"percentage"`
	Text       string  `json:"text"`
	ID         string  `json:"id,omitempty"`
}

// jsonOutput is the --json document.
type jsonOutput struct {
	State   string       `json:"state"`
	Summary string       `json:"summary,omitempty"`
	Results []jsonResult `json:"results"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if newController == nil {
		return fmt.Errorf("search: %w", errNotConfigured)
	}

	limit := searchLimit
	if !cmd.Flags().Changed("limit") && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			limit = settings.Search.DefaultLimit
		}
	}

	ctrl := newController(searchRenderer(cmd.OutOrStdout()))
	state, err := ctrl.HandleSearch(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if searchJSON {
		return outputSearchJSON(cmd, state)
	}
	outputSearchText(cmd, state)
	return nil
}

// searchRenderer picks the highlight marker for the output mode.
func searchRenderer(out io.Writer) driving.ResultRenderer {
	switch {
	case searchHTML:
		return services.NewHTMLRenderer()
	case searchJSON:
		return services.NewResultRenderer(nil)
	case isTerminal(out):
		return services.NewResultRenderer(styles.DefaultStyles().Mark)
	default:
		return services.NewResultRenderer(nil)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func outputSearchJSON(cmd *cobra.Command, state domain.ViewState) error {
	out := jsonOutput{State: state.State.String(), Results: []jsonResult{}}
	if state.Rendering != nil {
		out.Summary = state.Rendering.Summary
		for _, item := range state.Rendering.Items {
			out.Results = append(out.Results, jsonResult{
				Rank:       item.Ordinal,
				Score:      item.Score,
				Percentage: item.Percentage,
				Text:       item.Text,
				ID:         item.ID,
			})
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// outputSearchText writes to stdout so results can be piped.
func outputSearchText(cmd *cobra.Command, state domain.ViewState) {
	w := cmd.OutOrStdout()
	if !state.ResultsVisible() {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintln(w, state.Rendering.Summary)
	fmt.Fprintln(w)
	for _, item := range state.Rendering.Items {
		// Format: #N  87.3% match
		fmt.Fprintf(w, "  #%d  %s match\n", item.Ordinal, item.Percentage)
		fmt.Fprintf(w, "      %s\n", item.Highlighted)
		if item.HasID {
			fmt.Fprintf(w, "      ID: %s\n", item.ID)
		}
		fmt.Fprintln(w)
	}
}
