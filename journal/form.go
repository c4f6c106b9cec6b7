package journal

import (
	"strings"

	"github.com/rustyeddy/fxjournal/internal/validation"
	"github.com/rustyeddy/fxjournal/market"
)

func init() {
	validation.Register("side", func(s string) bool {
		_, err := ParseSide(s)
		return err == nil
	})
	validation.Register("session", func(s string) bool {
		_, err := ParseSession(s)
		return err == nil
	})
	validation.Register("mood", func(s string) bool {
		_, err := ParseMood(s)
		return err == nil
	})
}

// TradeForm is a trade as typed into the entry form, every field a string.
type TradeForm struct {
	Pair       string `form:"pair" validate:"required"`
	TradeType  string `form:"tradeType" validate:"required,side"`
	EntryPrice string `form:"entryPrice"`
	ExitPrice  string `form:"exitPrice"`
	Profit     string `form:"profit"`
	Date       string `form:"date" validate:"required,isodate"`
	Time       string `form:"time" validate:"omitempty,clock"`
	Notes      string `form:"notes"`
	Mood       string `form:"mood" validate:"omitempty,mood"`
	Session    string `form:"session" validate:"omitempty,session"`
	Screenshot string `form:"screenshot"`
}

func (f TradeForm) trimmed() TradeForm {
	f.Pair = strings.TrimSpace(f.Pair)
	f.TradeType = strings.TrimSpace(f.TradeType)
	f.EntryPrice = strings.TrimSpace(f.EntryPrice)
	f.ExitPrice = strings.TrimSpace(f.ExitPrice)
	f.Profit = strings.TrimSpace(f.Profit)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Mood = strings.TrimSpace(f.Mood)
	f.Session = strings.TrimSpace(f.Session)
	f.Screenshot = strings.TrimSpace(f.Screenshot)
	return f
}

// Validate reports every invalid field as a *validation.Error.
func (f TradeForm) Validate() error {
	return validation.Check(f.trimmed())
}

// Record validates the form and converts it into a TradeRecord without an
// id. Numeric fields that do not parse become 0. A blank profit with both
// prices filled in is taken to be the pip move of the trade.
func (f TradeForm) Record() (TradeRecord, error) {
	f = f.trimmed()
	if err := validation.Check(f); err != nil {
		return TradeRecord{}, err
	}

	side, _ := ParseSide(f.TradeType)
	rec := TradeRecord{
		Pair:       market.Normalize(f.Pair),
		TradeType:  side,
		EntryPrice: ParseAmount(f.EntryPrice),
		ExitPrice:  ParseAmount(f.ExitPrice),
		Profit:     ParseAmount(f.Profit),
		Date:       f.Date,
		Time:       f.Time,
		Notes:      f.Notes,
		Screenshot: f.Screenshot,
	}
	if f.Mood != "" {
		rec.Mood, _ = ParseMood(f.Mood)
	}
	if f.Session != "" {
		rec.Session, _ = ParseSession(f.Session)
	}

	if f.Profit == "" && f.EntryPrice != "" && f.ExitPrice != "" {
		pips := market.Pips(rec.Pair, side == Long, rec.EntryPrice.Float(), rec.ExitPrice.Float())
		rec.Profit = Amount(pips)
	}
	return rec, nil
}

// FormOf turns a stored record back into form values, for editing.
func FormOf(r TradeRecord) TradeForm {
	return TradeForm{
		Pair:       r.Pair,
		TradeType:  string(r.TradeType),
		EntryPrice: r.EntryPrice.String(),
		ExitPrice:  r.ExitPrice.String(),
		Profit:     r.Profit.String(),
		Date:       r.Date,
		Time:       r.Time,
		Notes:      r.Notes,
		Mood:       string(r.Mood),
		Session:    string(r.Session),
		Screenshot: r.Screenshot,
	}
}
