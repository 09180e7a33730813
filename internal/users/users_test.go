package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avaldes/blogboard/internal/model"
	"github.com/avaldes/blogboard/internal/store"
)

// fakeUsersServer serves /users, honoring username/password filters the way
// the remote store does.
func fakeUsersServer(t *testing.T, all []model.User) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			http.NotFound(w, r)
			return
		}

		matches := make([]model.User, 0, len(all))
		username := r.URL.Query().Get("username")
		password := r.URL.Query().Get("password")
		for _, u := range all {
			if username != "" && u.Username != username {
				continue
			}
			if password != "" && u.Password != password {
				continue
			}
			matches = append(matches, u)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(matches)
	}))
}

func TestFindCredential(t *testing.T) {
	server := fakeUsersServer(t, []model.User{
		{ID: "1", Username: "Tom", Password: "pw1"},
		{ID: "2", Username: "Sandra", Password: "pw2"},
	})
	defer server.Close()

	directory := NewDirectory(store.NewClient(server.URL))

	user, err := directory.FindCredential(context.Background(), "Sandra", "pw2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user == nil {
		t.Fatal("Expected a match, got nil")
	}
	if user.ID != "2" {
		t.Errorf("Expected user id '2', got '%s'", user.ID)
	}
}

func TestFindCredentialAbsent(t *testing.T) {
	server := fakeUsersServer(t, []model.User{
		{ID: "1", Username: "Tom", Password: "pw1"},
	})
	defer server.Close()

	directory := NewDirectory(store.NewClient(server.URL))

	user, err := directory.FindCredential(context.Background(), "Tom", "wrong")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("Expected no match, got %+v", user)
	}
}

func TestFindCredentialFirstMatchWins(t *testing.T) {
	// Duplicate usernames are tolerated; the first record in store order wins.
	server := fakeUsersServer(t, []model.User{
		{ID: "1", Username: "Tom", Password: "pw"},
		{ID: "2", Username: "Tom", Password: "pw"},
	})
	defer server.Close()

	directory := NewDirectory(store.NewClient(server.URL))

	user, err := directory.FindCredential(context.Background(), "Tom", "pw")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user == nil || user.ID != "1" {
		t.Errorf("Expected first match (id '1'), got %+v", user)
	}
}

func TestResolveDefaultActiveUser(t *testing.T) {
	tests := []struct {
		name       string
		all        []model.User
		expectedID string
	}{
		{
			name: "sentinel username present",
			all: []model.User{
				{ID: "1", Username: "Tom"},
				{ID: "2", Username: "Sandra"},
			},
			expectedID: "2",
		},
		{
			name: "fallback to first",
			all: []model.User{
				{ID: "1", Username: "Tom"},
				{ID: "2", Username: "Ana"},
			},
			expectedID: "1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := fakeUsersServer(t, test.all)
			defer server.Close()

			directory := NewDirectory(store.NewClient(server.URL))

			user, err := directory.ResolveDefaultActiveUser(context.Background(), "Sandra")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if user.ID != test.expectedID {
				t.Errorf("Expected user id '%s', got '%s'", test.expectedID, user.ID)
			}
		})
	}
}

func TestResolveDefaultActiveUserEmptyDirectory(t *testing.T) {
	server := fakeUsersServer(t, nil)
	defer server.Close()

	directory := NewDirectory(store.NewClient(server.URL))

	_, err := directory.ResolveDefaultActiveUser(context.Background(), "Sandra")
	if !errors.Is(err, ErrNoUsers) {
		t.Errorf("Expected ErrNoUsers, got %v", err)
	}
}

func TestSelectDefault(t *testing.T) {
	all := []model.User{
		{ID: "1", Username: "Tom"},
		{ID: "2", Username: "Sandra"},
	}

	if u := SelectDefault(all, "Sandra"); u == nil || u.ID != "2" {
		t.Errorf("Expected Sandra, got %+v", u)
	}
	if u := SelectDefault(all, "Nadie"); u == nil || u.ID != "1" {
		t.Errorf("Expected fallback to first, got %+v", u)
	}
	if u := SelectDefault(nil, "Sandra"); u != nil {
		t.Errorf("Expected nil for empty roster, got %+v", u)
	}
}
