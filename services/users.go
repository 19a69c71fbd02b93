package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/store"
)

const userProjection = "user_id, email, full_name, profile_image, created_at"

// User list sort modes.
const (
	UserSortByName = "name"
	UserSortByDate = "date"
)

// UserDirectory loads and shapes the registered-users view. Users are
// read-only from the admin side.
type UserDirectory struct {
	store store.Store

	mu       sync.Mutex // collators are not safe for concurrent use
	collator *collate.Collator
}

func NewUserDirectory(s store.Store) *UserDirectory {
	return &UserDirectory{
		store:    s,
		collator: collate.New(language.English),
	}
}

func (d *UserDirectory) Load(ctx context.Context) ([]models.User, error) {
	data, err := d.store.FetchAll(ctx, "users", userProjection)
	if err != nil {
		log.Printf("[UserDirectory] Error fetching users: %v", err)
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		log.Printf("[UserDirectory] Error decoding users: %v", err)
		return nil, err
	}

	for i := range users {
		if users[i].FullName == "" {
			users[i].FullName = models.UnknownUser
		}
		if users[i].ProfileImage == "" {
			users[i].ProfileImage = models.DefaultProfileImage
		}
	}
	return users, nil
}

// Filter keeps the users whose full name or email contains the query,
// case-insensitively. An empty query keeps everything.
func (d *UserDirectory) Filter(users []models.User, query string) []models.User {
	query = strings.ToLower(query)
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if query == "" ||
			strings.Contains(strings.ToLower(u.FullName), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out
}

// Sorted returns a stably sorted copy: by display name, or by account
// creation time when sortBy is "date". Unknown modes leave the order as-is.
func (d *UserDirectory) Sorted(users []models.User, sortBy string) []models.User {
	out := make([]models.User, len(users))
	copy(out, users)

	d.mu.Lock()
	defer d.mu.Unlock()

	switch sortBy {
	case UserSortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return d.collator.CompareString(out[i].FullName, out[j].FullName) < 0
		})
	case UserSortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return compareDates(out[i].CreatedAt, out[j].CreatedAt) < 0
		})
	}
	return out
}
