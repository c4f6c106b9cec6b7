// Package app is the explicit application state every command works
// against: storage, the trade store, the session and the lookups.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/fxjournal/admin"
	"github.com/rustyeddy/fxjournal/auth"
	"github.com/rustyeddy/fxjournal/calendar"
	"github.com/rustyeddy/fxjournal/config"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/stats"
	"github.com/rustyeddy/fxjournal/storage"
	"go.uber.org/zap"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrAdminRequired = errors.New("admin role required")
)

const directorySize = 50

type App struct {
	Config    *config.Config
	Log       *zap.Logger
	Storage   storage.Storage
	Trades    *journal.Store
	Session   *auth.Session
	Calendar  *calendar.Calendar
	Directory *admin.Directory

	// Now is the clock used for today/this-week figures.
	Now func() time.Time

	loc       *time.Location
	weekStart time.Weekday
}

// New opens storage and loads all state described by cfg.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	st, err := storage.Open(storage.Options{
		Type:   cfg.Storage.Type,
		Dir:    cfg.Storage.Dir,
		DBPath: cfg.Storage.DBPath,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a, err := NewWithStorage(cfg, log, st)
	if err != nil {
		st.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStorage builds the app on an already opened storage.
func NewWithStorage(cfg *config.Config, log *zap.Logger, st storage.Storage) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	trades, err := journal.Open(st, journal.WithLogger(log.Named("journal")))
	if err != nil {
		return nil, err
	}

	var verifier auth.Verifier = auth.AcceptAll{}
	if cfg.Auth.Verifier == "bcrypt" {
		book, err := auth.NewBook(st, 0)
		if err != nil {
			return nil, err
		}
		verifier = book
	}

	session, err := auth.NewSession(st, auth.WithVerifier(verifier), auth.WithLogger(log.Named("auth")))
	if err != nil {
		return nil, err
	}

	dir := admin.NewDirectory(directorySize, 1)
	var removed []int
	if _, err := storage.LoadJSON(st, storage.KeyRemovedUsers, &removed); err != nil {
		return nil, fmt.Errorf("load removed users: %w", err)
	}
	for _, userID := range removed {
		dir.Delete(userID)
	}

	latency, _ := cfg.Calendar.ParseLatency()
	loc, _ := cfg.Journal.Location()
	weekStart, _ := cfg.Journal.StartDay()

	log.Debug("app ready",
		zap.String("storage", cfg.Storage.Type),
		zap.Int("trades", trades.Len()),
		zap.Stringer("session", session.State()),
	)

	return &App{
		Config:    cfg,
		Log:       log,
		Storage:   st,
		Trades:    trades,
		Session:   session,
		Calendar:  calendar.New(calendar.WithLatency(latency)),
		Directory: dir,
		Now:       time.Now,
		loc:       loc,
		weekStart: weekStart,
	}, nil
}

func (a *App) Close() error {
	_ = a.Log.Sync()
	return a.Storage.Close()
}

// RequireUser fails when login is enforced and nobody is logged in.
func (a *App) RequireUser() error {
	if a.Config.Auth.RequireLogin && !a.Session.IsAuthenticated() {
		return ErrLoginRequired
	}
	return nil
}

// RequireAdmin fails unless the current user is an admin.
func (a *App) RequireAdmin() error {
	if !a.Session.IsAuthenticated() {
		return ErrLoginRequired
	}
	if !a.Session.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// AddTrade validates a submitted form and stores it.
func (a *App) AddTrade(f journal.TradeForm) (journal.TradeRecord, error) {
	if err := a.RequireUser(); err != nil {
		return journal.TradeRecord{}, err
	}
	rec, err := f.Record()
	if err != nil {
		return journal.TradeRecord{}, err
	}
	return a.Trades.Create(rec)
}

// EditTrade resubmits the full form for an existing trade.
func (a *App) EditTrade(tradeID string, f journal.TradeForm) (bool, error) {
	if err := a.RequireUser(); err != nil {
		return false, err
	}
	rec, err := f.Record()
	if err != nil {
		return false, err
	}
	return a.Trades.Update(tradeID, rec)
}

func (a *App) PatchTrade(tradeID string, p journal.TradePatch) (bool, error) {
	if err := a.RequireUser(); err != nil {
		return false, err
	}
	return a.Trades.Patch(tradeID, p)
}

func (a *App) DeleteTrade(tradeID string) (bool, error) {
	if err := a.RequireUser(); err != nil {
		return false, err
	}
	return a.Trades.Delete(tradeID)
}

// ImportCSV adds every row of a CSV export as a new trade. All rows are
// validated before any is stored.
func (a *App) ImportCSV(r io.Reader) (int, error) {
	if err := a.RequireUser(); err != nil {
		return 0, err
	}
	forms, err := journal.ReadCSV(r)
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}

	recs := make([]journal.TradeRecord, 0, len(forms))
	for i, f := range forms {
		rec, err := f.Record()
		if err != nil {
			// +2: header row and one-based numbering
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}

	for i, rec := range recs {
		if _, err := a.Trades.Create(rec); err != nil {
			return i, err
		}
	}
	a.Log.Info("imported trades", zap.Int("count", len(recs)))
	return len(recs), nil
}

// DeleteUser removes a directory user. Admins only.
func (a *App) DeleteUser(userID int) (bool, error) {
	if err := a.RequireAdmin(); err != nil {
		return false, err
	}
	if !a.Directory.Delete(userID) {
		return false, nil
	}
	if err := storage.SaveJSON(a.Storage, storage.KeyRemovedUsers, a.Directory.Removed()); err != nil {
		return false, fmt.Errorf("persist removed users: %w", err)
	}
	a.Log.Info("user deleted", zap.Int("id", userID))
	return true, nil
}

func (a *App) now() time.Time {
	return a.Now().In(a.loc)
}

// Today is the current calendar day in the journal timezone.
func (a *App) Today() stats.Window {
	return stats.Today(a.now())
}

// Week is the configured week window containing today.
func (a *App) Week() stats.Window {
	if a.Config.Journal.Week == "calendar" {
		return stats.CalendarWeek(a.now(), a.weekStart)
	}
	return stats.ThisWeek(a.now())
}

// Dashboard is the insights card for the current moment.
func (a *App) Dashboard() stats.Board {
	return stats.DashboardFor(a.Trades.List(), a.Today(), a.Week())
}
