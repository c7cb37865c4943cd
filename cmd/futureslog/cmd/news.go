package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/futureslog/news"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Browse market news",
}

var newsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search headlines",
	RunE:  runNewsSearch,
}

var newsSuggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "List suggested topics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(news.Suggestions(), "\n"))
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
	newsCmd.AddCommand(newsSearchCmd, newsSuggestionsCmd)
}

func runNewsSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	articles, err := a.News.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, art := range articles {
		fmt.Fprintf(out, "%s: %s (%s ago)\n  %s\n  %s\n\n",
			art.Source, art.Title, time.Since(art.PublishedAt).Round(time.Minute), art.Description, art.URL)
	}
	return nil
}
