// Package admin backs the admin user table: a mock user directory with
// search, paging and headline figures.
package admin

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Status   Status  `json:"status"`
	JoinDate string  `json:"joinDate"`
	Trades   int     `json:"trades"`
	Profit   float64 `json:"profit"`
}

type Directory struct {
	users   []User
	removed []int
}

// NewDirectory fabricates n users. The same seed always yields the same
// directory.
func NewDirectory(n int, seed int64) *Directory {
	r := rand.New(rand.NewSource(seed))
	users := make([]User, 0, n)
	for i := 0; i < n; i++ {
		u := User{
			ID:       i + 1,
			Name:     fmt.Sprintf("User %d", i+1),
			Email:    fmt.Sprintf("user%d@example.com", i+1),
			Role:     "user",
			Status:   Active,
			JoinDate: time.Date(2024, time.January, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Trades:   r.Intn(100),
			Profit:   math.Round((r.Float64()*1000-500)*100) / 100,
		}
		if i%5 == 0 {
			u.Role = "admin"
		}
		if i%3 == 0 {
			u.Status = Inactive
		}
		users = append(users, u)
	}
	return &Directory{users: users}
}

func (d *Directory) Users() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

// Delete removes the user with the given id. It reports false when there is
// no such user.
func (d *Directory) Delete(userID int) bool {
	for i, u := range d.users {
		if u.ID == userID {
			d.users = append(d.users[:i:i], d.users[i+1:]...)
			d.removed = append(d.removed, userID)
			return true
		}
	}
	return false
}

// Removed lists the ids deleted so far, in deletion order.
func (d *Directory) Removed() []int {
	out := make([]int, len(d.removed))
	copy(out, d.removed)
	return out
}

// Search matches query case-insensitively against name and email. An empty
// query matches everyone.
func (d *Directory) Search(query string) []User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.Users()
	}
	var out []User
	for _, u := range d.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// Page returns the zero-based page of users. Pages past the end are empty.
func Page(users []User, page, perPage int) []User {
	if perPage <= 0 || page < 0 {
		return nil
	}
	start := page * perPage
	if start >= len(users) {
		return nil
	}
	end := min(start+perPage, len(users))
	return users[start:end]
}

// Pages is the number of pages needed for total rows.
func Pages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

type Stats struct {
	TotalUsers    int     `json:"totalUsers"`
	ActiveUsers   int     `json:"activeUsers"`
	TotalTrades   int     `json:"totalTrades"`
	AverageProfit float64 `json:"averageProfit"`
}

func Summarize(users []User) Stats {
	s := Stats{TotalUsers: len(users)}
	var profit float64
	for _, u := range users {
		if u.Status == Active {
			s.ActiveUsers++
		}
		s.TotalTrades += u.Trades
		profit += u.Profit
	}
	if len(users) > 0 {
		s.AverageProfit = math.Round(profit/float64(len(users))*100) / 100
	}
	return s
}
