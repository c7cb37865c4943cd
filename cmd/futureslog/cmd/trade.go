package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rustyeddy/futureslog/journal"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Log, edit and query trades",
	Long: `Manage the trade journal.

Subcommands:
  add    - Log a new trade
  edit   - Change fields of an existing trade
  rm     - Delete a trade
  show   - Print one trade as an Org entry
  list   - Search and filter the journal
  today  - List trades dated today
  stats  - Count wins and losses
  export - Write the journal as CSV

Examples:
  futureslog trade add --title "ORB long" --ticker ES --outcome win --tag orb
  futureslog trade list --search orb --session "New York"
  futureslog trade today`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Change fields of an existing trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeEdit,
}

var tradeRmCmd = &cobra.Command{
	Use:   "rm <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRm,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Print one trade as an Org entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search and filter the journal",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades dated today",
	Args:  cobra.NoArgs,
	RunE:  runTradeToday,
}

var tradeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count wins and losses",
	Args:  cobra.NoArgs,
	RunE:  runTradeStats,
}

var tradeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the journal as CSV",
	Args:  cobra.NoArgs,
	RunE:  runTradeExport,
}

// trade field flags, shared by add and edit
var (
	tradeTitle      string
	tradeTicker     string
	tradeDate       string
	tradeOutcome    string
	tradeRating     int
	tradeEmotion    string
	tradeSession    string
	tradeReflection string
	tradeTags       []string
	tradeImages     []string
)

var (
	listSearch  string
	listSession string
	listOutcome string
	listFormat  string
	exportPath  string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd, tradeEditCmd, tradeRmCmd, tradeShowCmd,
		tradeListCmd, tradeTodayCmd, tradeStatsCmd, tradeExportCmd)

	for _, c := range []*cobra.Command{tradeAddCmd, tradeEditCmd} {
		addTradeFieldFlags(c.Flags())
	}
	_ = tradeAddCmd.MarkFlagRequired("title")
	_ = tradeAddCmd.MarkFlagRequired("ticker")

	for _, c := range []*cobra.Command{tradeListCmd, tradeTodayCmd} {
		c.Flags().StringVarP(&listFormat, "format", "f", "table", "output format: table, org or csv")
	}
	tradeListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "text to find in title, ticker, reflection or tags")
	tradeListCmd.Flags().StringVar(&listSession, "session", "", "only this session (London, New York, Asia, Globex)")
	tradeListCmd.Flags().StringVar(&listOutcome, "outcome", "", "only this outcome (win, loss, neutral, breakeven)")

	tradeExportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "CSV file to write (default stdout)")
}

func addTradeFieldFlags(fs *pflag.FlagSet) {
	fs.StringVar(&tradeTitle, "title", "", "short title")
	fs.StringVar(&tradeTicker, "ticker", "", "ticker symbol, e.g. ES")
	fs.StringVar(&tradeDate, "date", "", "trade date, YYYY-MM-DD or RFC3339 (default now)")
	fs.StringVar(&tradeOutcome, "outcome", "neutral", "win, loss, neutral or breakeven")
	fs.IntVar(&tradeRating, "rating", 3, "rating 1-5")
	fs.StringVar(&tradeEmotion, "emotion", "neutral", "confident, nervous, fomo, patient, frustrated or neutral")
	fs.StringVar(&tradeSession, "session", "New York", "London, New York, Asia or Globex")
	fs.StringVar(&tradeReflection, "reflection", "", "what you learned")
	fs.StringSliceVar(&tradeTags, "tag", nil, "tag, repeatable")
	fs.StringSliceVar(&tradeImages, "image", nil, "screenshot URL, repeatable")
}

// applyTradeFlags copies every flag the user set onto t.
func applyTradeFlags(fs *pflag.FlagSet, t journal.Trade) (journal.Trade, error) {
	var err error
	set := func(name string, fn func() error) {
		if err == nil && fs.Changed(name) {
			err = fn()
		}
	}

	set("title", func() error { t.Title = tradeTitle; return nil })
	set("ticker", func() error { t.Ticker = strings.ToUpper(tradeTicker); return nil })
	set("reflection", func() error { t.Reflection = tradeReflection; return nil })
	set("rating", func() error { t.Rating = tradeRating; return nil })
	set("tag", func() error { t.Tags = append([]string(nil), tradeTags...); return nil })
	set("image", func() error { t.ImageURLs = append([]string(nil), tradeImages...); return nil })
	set("date", func() error {
		d, e := parseDate(tradeDate)
		t.Date = d
		return e
	})
	set("outcome", func() error {
		o, e := journal.ParseOutcome(tradeOutcome)
		t.Outcome = o
		return e
	})
	set("emotion", func() error {
		em, e := journal.ParseEmotion(tradeEmotion)
		t.Emotion = em
		return e
	})
	set("session", func() error {
		s, e := journal.ParseSession(tradeSession)
		t.Session = s
		return e
	})
	return t, err
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	t := journal.NewTrade()
	if cmd.Flags().Changed("date") {
		d, err := parseDate(tradeDate)
		if err != nil {
			return err
		}
		if t, err = journal.NewTradeAt(d); err != nil {
			return err
		}
	}
	t, err := applyTradeFlags(cmd.Flags(), t)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Trades.Add(cmd.Context(), t); err != nil {
		return fmt.Errorf("add trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runTradeEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.Trades.Get(args[0])
	if err != nil {
		return err
	}
	t, err = applyTradeFlags(cmd.Flags(), t)
	if err != nil {
		return err
	}
	if err := a.Trades.Update(cmd.Context(), t); err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runTradeRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Trades.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.Trades.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	q := journal.Query{Text: listSearch}
	if listSession != "" {
		s, err := journal.ParseSession(listSession)
		if err != nil {
			return err
		}
		q.Session = s
	}
	if listOutcome != "" {
		o, err := journal.ParseOutcome(listOutcome)
		if err != nil {
			return err
		}
		q.Outcome = o
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return printTrades(cmd.OutOrStdout(), a.Trades.Filter(q), listFormat)
}

func runTradeToday(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return printTrades(cmd.OutOrStdout(), a.Trades.TodaysTrades(), listFormat)
}

func runTradeStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	wins, losses := a.Trades.WinLossRatio()
	fmt.Fprintf(cmd.OutOrStdout(), "wins: %d  losses: %d\n", wins, losses)
	return nil
}

func runTradeExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if exportPath != "" {
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportPath, err)
		}
		defer f.Close()
		out = f
	}
	if err := journal.WriteCSV(out, a.Trades.Trades()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func printTrades(w io.Writer, trades []journal.Trade, format string) error {
	switch format {
	case "org":
		fmt.Fprintln(w, journal.FormatTradesOrg(trades))
		return nil
	case "csv":
		return journal.WriteCSV(w, trades)
	case "table":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTICKER\tOUTCOME\tRATING\tSESSION\tEMOTION\tTITLE")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			t.ID, t.Date.Local().Format("2006-01-02 15:04"), t.Ticker, t.Outcome,
			t.Rating, t.Session, t.Emotion.Emoji(), t.Title)
	}
	return tw.Flush()
}
