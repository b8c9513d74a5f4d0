// Package model defines the domain records persisted and exchanged by
// starkeep: starred repository snapshots and the backups that hold them.
package model

import (
	"fmt"
	"time"
)

// User is the owner of a repository or the authenticated principal.
// Immutable from this system's point of view.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
	URL       string `json:"url,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// License identifies the license attached to a repository.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id,omitempty"`
}

// Repository is a read-only snapshot of a repository as reported by the
// platform. FullName is always Owner.Login + "/" + Name.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Owner       User      `json:"owner"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Fork        bool      `json:"fork"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PushedAt    time.Time `json:"pushed_at"`
	Stars       int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Language    string    `json:"language,omitempty"`
	Forks       int       `json:"forks_count"`
	Archived    bool      `json:"archived"`
	Disabled    bool      `json:"disabled"`
	License     *License  `json:"license,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
}

// BackupMeta is the lightweight projection of a backup used for listing.
// Count is fixed at creation time and never updated afterwards.
type BackupMeta struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	User        string    `json:"user"`
	Count       int       `json:"count"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// Backup is one immutable point-in-time snapshot of a user's star set:
// exactly one meta record plus the ordered repository sequence captured with
// it. It is created whole, never mutated in place, and destroyed whole.
type Backup struct {
	Meta         BackupMeta   `json:"meta"`
	Repositories []Repository `json:"repositories"`
}

// Validate reports whether a repository snapshot is structurally sound.
// Used when importing backup files from disk.
func (r *Repository) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("repository missing id")
	}

	if r.Name == "" || r.Owner.Login == "" {
		return fmt.Errorf("repository %d missing name or owner", r.ID)
	}

	if want := r.Owner.Login + "/" + r.Name; r.FullName != want {
		return fmt.Errorf("repository %d full_name %q does not match %q", r.ID, r.FullName, want)
	}

	return nil
}
