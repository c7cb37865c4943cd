package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode entry. Structured fields go
// in the PROPERTIES drawer, the reflection becomes the body.
func FormatTradeOrg(t Trade) string {
	var b strings.Builder

	fmt.Fprintf(&b, "** %s %s (%s)", t.Ticker, orTitle(t.Title), shortID(t.ID))
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, " :%s:", strings.Join(orgTags(t.Tags), ":"))
	}
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date.Format(time.RFC3339))
	fmt.Fprintf(&b, ":TICKER: %s\n", t.Ticker)
	fmt.Fprintf(&b, ":OUTCOME: %s\n", t.Outcome)
	fmt.Fprintf(&b, ":RATING: %s\n", stars(t.Rating))
	fmt.Fprintf(&b, ":EMOTION: %s %s\n", t.Emotion.Emoji(), t.Emotion)
	fmt.Fprintf(&b, ":SESSION: %s\n", t.Session)
	b.WriteString(":END:\n")

	b.WriteString("\n*** Reflection\n")
	if t.Reflection == "" {
		b.WriteString("- \n")
	} else {
		b.WriteString(strings.TrimRight(t.Reflection, "\n"))
		b.WriteString("\n")
	}

	if len(t.ImageURLs) > 0 {
		b.WriteString("\n*** Screenshots\n")
		for _, u := range t.ImageURLs {
			fmt.Fprintf(&b, "- [[%s]]\n", u)
		}
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func orTitle(s string) string {
	if s == "" {
		return "(untitled)"
	}
	return s
}

// stars renders 1-5 as filled/empty stars; out of range ratings print as-is.
func stars(n int) string {
	if n < 1 || n > 5 {
		return fmt.Sprintf("%d", n)
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// orgTags makes tags safe for an Org heading: no spaces or colons.
func orgTags(tags []string) []string {
	r := strings.NewReplacer(" ", "_", ":", "_")
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = r.Replace(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
