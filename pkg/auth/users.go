package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// User is a configured catalog account
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	Role         string
}

// UserStore is an in-memory account list
type UserStore struct {
	users map[string]User
}

// ParseUsers reads "name:bcrypt-hash:role" entries separated by commas.
// The role part is optional.
func ParseUsers(raw string) (*UserStore, error) {
	store := &UserStore{users: make(map[string]User)}
	var id uint
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("malformed user entry %q", entry)
		}
		if _, dup := store.users[parts[0]]; dup {
			return nil, fmt.Errorf("duplicate user %q", parts[0])
		}
		id++
		user := User{ID: id, Username: parts[0], PasswordHash: parts[1]}
		if len(parts) == 3 {
			user.Role = parts[2]
		}
		store.users[user.Username] = user
	}
	return store, nil
}

// Authenticate checks the credentials against the store
func (s *UserStore) Authenticate(username, password string) (User, error) {
	user, ok := s.users[username]
	if !ok || !CheckPassword(user.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Usernames lists configured accounts in order
func (s *UserStore) Usernames() []string {
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
