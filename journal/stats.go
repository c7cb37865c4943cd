package journal

// TodaysTrades returns the trades dated on the current calendar day in the
// store's location.
func (s *TradeStore) TodaysTrades() []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	y, m, d := s.now().In(s.loc).Date()
	var out []Trade
	for _, t := range s.trades {
		ty, tm, td := t.Date.In(s.loc).Date()
		if ty == y && tm == m && td == d {
			out = append(out, t.clone())
		}
	}
	return out
}

// WinLossRatio counts wins and losses. Neutral and breakeven trades are in
// neither count.
func (s *TradeStore) WinLossRatio() (wins, losses int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trades {
		switch t.Outcome {
		case OutcomeWin:
			wins++
		case OutcomeLoss:
			losses++
		}
	}
	return wins, losses
}
