package gh

import (
	"github.com/google/go-github/v82/github"

	"github.com/inovacc/starkeep/internal/model"
)

// toRepository translates a github.Repository into the internal snapshot
// record. Pointer fields collapse to zero values via the generated getters.
func toRepository(r *github.Repository) model.Repository {
	repo := model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Owner:       toUser(r.GetOwner()),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		Fork:        r.GetFork(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		PushedAt:    r.GetPushedAt().Time,
		Stars:       r.GetStargazersCount(),
		Watchers:    r.GetWatchersCount(),
		Language:    r.GetLanguage(),
		Forks:       r.GetForksCount(),
		Archived:    r.GetArchived(),
		Disabled:    r.GetDisabled(),
		Topics:      r.Topics,
	}

	if l := r.GetLicense(); l != nil {
		repo.License = &model.License{
			Key:    l.GetKey(),
			Name:   l.GetName(),
			SPDXID: l.GetSPDXID(),
		}
	}

	return repo
}

func toUser(u *github.User) model.User {
	return model.User{
		Login:     u.GetLogin(),
		ID:        u.GetID(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
		URL:       u.GetURL(),
		Name:      u.GetName(),
		Email:     u.GetEmail(),
		Bio:       u.GetBio(),
	}
}
