package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func validRepo() Repository {
	return Repository{
		ID:       42,
		Name:     "repo",
		FullName: "alice/repo",
		Owner:    User{Login: "alice", ID: 7},
		HTMLURL:  "https://github.com/alice/repo",
	}
}

func TestRepository_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Repository)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(r *Repository) {},
		},
		{
			name:    "missing id",
			mutate:  func(r *Repository) { r.ID = 0 },
			wantErr: true,
		},
		{
			name:    "missing name",
			mutate:  func(r *Repository) { r.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing owner login",
			mutate:  func(r *Repository) { r.Owner.Login = "" },
			wantErr: true,
		},
		{
			name:    "full name mismatch",
			mutate:  func(r *Repository) { r.FullName = "bob/repo" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := validRepo()
			tt.mutate(&repo)

			err := repo.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRepository_JSONTimestamps(t *testing.T) {
	repo := validRepo()
	repo.CreatedAt = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	raw, err := json.Marshal(&repo)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `"created_at":"2026-01-02T15:04:05Z"`
	if !strings.Contains(string(raw), want) {
		t.Errorf("timestamps must serialize as RFC 3339, got %s", raw)
	}
}

