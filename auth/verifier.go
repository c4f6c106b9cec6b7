package auth

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rustyeddy/fxjournal/storage"
	"golang.org/x/crypto/bcrypt"
)

// Verifier decides whether an email/password pair may log in.
type Verifier interface {
	// Verify returns the display name of the account.
	Verify(email, password string) (string, error)
	// Enroll records a newly registered account.
	Enroll(name, email, password string) error
}

// AcceptAll lets any non-empty credentials in. It is the demo behaviour and
// checks nothing.
type AcceptAll struct{}

const demoName = "Demo User"

func (AcceptAll) Verify(email, password string) (string, error) { return demoName, nil }

func (AcceptAll) Enroll(name, email, password string) error { return nil }

type account struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// Book verifies against bcrypt hashes of registered accounts, saved under
// storage.KeyCredentials.
type Book struct {
	mu       sync.Mutex
	st       storage.Storage
	cost     int
	accounts map[string]account
}

func NewBook(st storage.Storage, cost int) (*Book, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b := &Book{st: st, cost: cost, accounts: map[string]account{}}
	if _, err := storage.LoadJSON(st, storage.KeyCredentials, &b.accounts); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return b, nil
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (b *Book) Verify(email, password string) (string, error) {
	b.mu.Lock()
	a, ok := b.accounts[key(email)]
	b.mu.Unlock()

	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.Name, nil
}

func (b *Book) Enroll(name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	k := key(email)
	if _, ok := b.accounts[k]; ok {
		return ErrEmailTaken
	}
	next := make(map[string]account, len(b.accounts)+1)
	for k, v := range b.accounts {
		next[k] = v
	}
	next[k] = account{Name: name, Hash: string(hash)}

	if err := storage.SaveJSON(b.st, storage.KeyCredentials, next); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	b.accounts = next
	return nil
}

// Len returns the number of enrolled accounts.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.accounts)
}
