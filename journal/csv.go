package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"id", "date", "title", "ticker", "outcome", "rating", "emotion", "session", "tags", "image_urls", "reflection"}

// WriteCSV exports trades with a header row. Tags and image URLs are joined
// with "|".
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date.Format(time.RFC3339),
			t.Title,
			t.Ticker,
			string(t.Outcome),
			strconv.Itoa(t.Rating),
			string(t.Emotion),
			string(t.Session),
			strings.Join(t.Tags, "|"),
			strings.Join(t.ImageURLs, "|"),
			t.Reflection,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
