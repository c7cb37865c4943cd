package journal

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rustyeddy/futureslog/pkg/id"
)

// Outcome is how a trade finished.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeNeutral   Outcome = "neutral"
	OutcomeBreakeven Outcome = "breakeven"
)

// Emotion is the trader's state of mind while in the trade.
type Emotion string

const (
	EmotionConfident  Emotion = "confident"
	EmotionNervous    Emotion = "nervous"
	EmotionFOMO       Emotion = "fomo"
	EmotionPatient    Emotion = "patient"
	EmotionFrustrated Emotion = "frustrated"
	EmotionNeutral    Emotion = "neutral"
)

// Session is the futures trading session a trade was taken in.
type Session string

const (
	SessionLondon  Session = "London"
	SessionNewYork Session = "New York"
	SessionAsia    Session = "Asia"
	SessionGlobex  Session = "Globex"
)

// Trade is a single journal entry.
type Trade struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Ticker     string    `json:"ticker"`
	Outcome    Outcome   `json:"outcome"`
	Rating     int       `json:"rating"` // 1-5 stars, not enforced
	Reflection string    `json:"reflection"`
	Tags       []string  `json:"tags"`
	ImageURLs  []string  `json:"imageURLs"`
	Emotion    Emotion   `json:"emotion"`
	Session    Session   `json:"session"`
}

// NewTrade returns a blank entry with a fresh id, dated now.
func NewTrade() Trade {
	return Trade{
		ID:      id.New(),
		Date:    time.Now(),
		Outcome: OutcomeNeutral,
		Rating:  3,
		Emotion: EmotionNeutral,
		Session: SessionNewYork,
	}
}

// NewTradeAt is NewTrade for a trade logged after the fact: both the date
// and the id timestamp are set to date. Dates before 1970 are rejected.
func NewTradeAt(date time.Time) (Trade, error) {
	tradeID, err := id.NewAt(date)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	t := NewTrade()
	t.ID = tradeID
	t.Date = date
	return t, nil
}

func (t Trade) clone() Trade {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	if t.ImageURLs != nil {
		t.ImageURLs = append([]string(nil), t.ImageURLs...)
	}
	return t
}

var (
	outcomes = []Outcome{OutcomeWin, OutcomeLoss, OutcomeNeutral, OutcomeBreakeven}
	emotions = []Emotion{EmotionConfident, EmotionNervous, EmotionFOMO, EmotionPatient, EmotionFrustrated, EmotionNeutral}
	sessions = []Session{SessionLondon, SessionNewYork, SessionAsia, SessionGlobex}
)

func Outcomes() []Outcome { return append([]Outcome(nil), outcomes...) }
func Emotions() []Emotion { return append([]Emotion(nil), emotions...) }
func Sessions() []Session { return append([]Session(nil), sessions...) }

// ParseOutcome accepts any casing of the outcome names.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range outcomes {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// ParseEmotion accepts any casing of the emotion names.
func ParseEmotion(s string) (Emotion, error) {
	for _, e := range emotions {
		if strings.EqualFold(s, string(e)) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown emotion %q", s)
}

// ParseSession accepts the display names as well as the short forms
// "ny" and "newyork".
func ParseSession(s string) (Session, error) {
	for _, ss := range sessions {
		if strings.EqualFold(s, string(ss)) {
			return ss, nil
		}
	}
	switch strings.ToLower(s) {
	case "ny", "newyork", "new_york":
		return SessionNewYork, nil
	}
	return "", fmt.Errorf("unknown session %q", s)
}

func (e Emotion) Emoji() string {
	switch e {
	case EmotionConfident:
		return "😊"
	case EmotionNervous:
		return "😰"
	case EmotionFOMO:
		return "😩"
	case EmotionPatient:
		return "😌"
	case EmotionFrustrated:
		return "😤"
	}
	return "😐"
}

// validate rejects enum values that would not decode back to themselves.
// Unset fields are allowed and stay unset.
func (t Trade) validate() error {
	if t.Outcome != "" && !slices.Contains(outcomes, t.Outcome) {
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidTrade, t.Outcome)
	}
	if t.Emotion != "" && !slices.Contains(emotions, t.Emotion) {
		return fmt.Errorf("%w: unknown emotion %q", ErrInvalidTrade, t.Emotion)
	}
	if t.Session != "" && !slices.Contains(sessions, t.Session) {
		return fmt.Errorf("%w: unknown session %q", ErrInvalidTrade, t.Session)
	}
	return nil
}

// An empty string decodes to the unset value.
func (o *Outcome) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*o = ""
		return nil
	}
	v, err := ParseOutcome(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (e *Emotion) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*e = ""
		return nil
	}
	v, err := ParseEmotion(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	v, err := ParseSession(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
