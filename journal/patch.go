package journal

// TradePatch names the fields an edit changes; nil fields are kept.
type TradePatch struct {
	Pair       *string
	TradeType  *Side
	EntryPrice *Amount
	ExitPrice  *Amount
	Profit     *Amount
	Date       *string
	Time       *string
	Notes      *string
	Mood       *Mood
	Session    *Session
	Screenshot *string
}

func (p TradePatch) Empty() bool {
	return p == TradePatch{}
}

// Apply returns rec with the patch's fields replaced. The ID never changes.
func (p TradePatch) Apply(rec TradeRecord) TradeRecord {
	if p.Pair != nil {
		rec.Pair = *p.Pair
	}
	if p.TradeType != nil {
		rec.TradeType = *p.TradeType
	}
	if p.EntryPrice != nil {
		rec.EntryPrice = *p.EntryPrice
	}
	if p.ExitPrice != nil {
		rec.ExitPrice = *p.ExitPrice
	}
	if p.Profit != nil {
		rec.Profit = *p.Profit
	}
	if p.Date != nil {
		rec.Date = *p.Date
	}
	if p.Time != nil {
		rec.Time = *p.Time
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	if p.Mood != nil {
		rec.Mood = *p.Mood
	}
	if p.Session != nil {
		rec.Session = *p.Session
	}
	if p.Screenshot != nil {
		rec.Screenshot = *p.Screenshot
	}
	return rec
}
