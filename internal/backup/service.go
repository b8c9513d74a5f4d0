// Package backup creates, lists, restores, and deletes point-in-time
// snapshots of a user's starred repositories on top of the embedded
// key-value store.
//
// Each backup is stored as two records sharing the backup id as key prefix:
// <id>/meta holds the lightweight BackupMeta so listing never deserializes
// payloads, and <id>/data holds the full snapshot. Both records are written
// and deleted in single store transactions.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inovacc/starkeep/internal/database"
	"github.com/inovacc/starkeep/internal/gh"
	"github.com/inovacc/starkeep/internal/model"
)

const (
	keyMeta = "meta"
	keyData = "data"

	idPrefix   = "backup"
	dateLayout = "2006-01-02"

	// fetchPerPage is the page size used when capturing the star set.
	fetchPerPage = 100
)

// StarsClient is the slice of the API client the service needs. *gh.Client
// satisfies it.
type StarsClient interface {
	ListAllStarred(ctx context.Context, opts gh.ListOptions) ([]model.Repository, error)
	CurrentUser(ctx context.Context) (*model.User, error)
}

// Service manages backup snapshots. It never opens or closes the injected
// store; that lifecycle belongs to the caller.
type Service struct {
	store  database.Store
	client StarsClient
	logger *slog.Logger

	now    func() time.Time
	suffix func() string
}

// NewService creates a backup service on top of an already-open store.
func NewService(store database.Store, client StarsClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  store,
		client: client,
		logger: logger,
		now:    time.Now,
		suffix: func() string { return uuid.NewString()[:8] },
	}
}

// CreateOptions configures backup creation.
type CreateOptions struct {
	Description string
	Tags        []string

	// Overwrite replaces the most recent backup instead of creating a new
	// one. With no prior backups a plain date-based id is used.
	Overwrite bool
}

// Create captures the current star set as a new immutable backup and returns
// its meta record. The current user and the full star list are fetched
// concurrently; API client errors pass through verbatim.
func (s *Service) Create(ctx context.Context, opts CreateOptions) (*model.BackupMeta, error) {
	var (
		user  *model.User
		repos []model.Repository
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.client.CurrentUser(gctx)
		user = u

		return err
	})

	g.Go(func() error {
		r, err := s.client.ListAllStarred(gctx, gh.ListOptions{PerPage: fetchPerPage})
		repos = r

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	id, err := s.newBackupID(opts.Overwrite)
	if err != nil {
		return nil, err
	}

	meta := model.BackupMeta{
		ID:          id,
		CreatedAt:   s.now(),
		User:        user.Login,
		Count:       len(repos),
		Description: opts.Description,
		Tags:        opts.Tags,
	}

	if err := s.write(&model.Backup{Meta: meta, Repositories: repos}); err != nil {
		return nil, err
	}

	s.logger.Info("backup created",
		slog.String("id", id),
		slog.String("user", meta.User),
		slog.Int("repos", meta.Count),
	)

	return &meta, nil
}

// List returns the meta records of all backups, most recent first. Records
// that do not decode into a meta with an id and a creation time are skipped,
// never fatal.
func (s *Service) List() ([]model.BackupMeta, error) {
	var metas []model.BackupMeta

	err := s.store.Scan("", func(key string, value []byte) error {
		parts := database.SplitKey(key)
		if len(parts) != 2 || parts[1] != keyMeta {
			return nil
		}

		var meta model.BackupMeta

		if err := json.Unmarshal(value, &meta); err != nil {
			s.logger.Debug("skipping malformed backup meta",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)

			return nil
		}

		if meta.ID == "" || meta.CreatedAt.IsZero() {
			s.logger.Debug("skipping incomplete backup meta", slog.String("key", key))

			return nil
		}

		metas = append(metas, meta)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})

	return metas, nil
}

// Get returns the full backup, or nil when no backup has that id.
func (s *Service) Get(id string) (*model.Backup, error) {
	raw, err := s.store.Get(database.Key(id, keyData))
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, nil
	}

	var b model.Backup

	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to decode backup %s: %w", id, err)
	}

	return &b, nil
}

// Delete removes a backup. It returns false without side effects when the
// backup does not exist; otherwise both records go in one transaction.
func (s *Service) Delete(id string) (bool, error) {
	metaKey := database.Key(id, keyMeta)
	dataKey := database.Key(id, keyData)

	meta, err := s.store.Get(metaKey)
	if err != nil {
		return false, err
	}

	data, err := s.store.Get(dataKey)
	if err != nil {
		return false, err
	}

	// Tolerate partial states: a backup exists if either record does.
	if meta == nil && data == nil {
		return false, nil
	}

	if err := s.store.Delete(metaKey, dataKey); err != nil {
		return false, err
	}

	s.logger.Info("backup deleted", slog.String("id", id))

	return true, nil
}

// write persists both records of a backup atomically.
func (s *Service) write(b *model.Backup) error {
	metaRaw, err := json.Marshal(&b.Meta)
	if err != nil {
		return err
	}

	dataRaw, err := json.Marshal(b)
	if err != nil {
		return err
	}

	return s.store.PutAll(map[string][]byte{
		database.Key(b.Meta.ID, keyMeta): metaRaw,
		database.Key(b.Meta.ID, keyData): dataRaw,
	})
}

// newBackupID picks the id for a create. Overwrite reuses the most recent
// backup's id so the snapshot is fully replaced; otherwise a date-based id
// with a random suffix guarantees no collision with earlier backups from the
// same day.
func (s *Service) newBackupID(overwrite bool) (string, error) {
	if overwrite {
		metas, err := s.List()
		if err != nil {
			return "", err
		}

		if len(metas) > 0 {
			return metas[0].ID, nil
		}

		return s.dateID(), nil
	}

	return fmt.Sprintf("%s-%s", s.dateID(), s.suffix()), nil
}

func (s *Service) dateID() string {
	return fmt.Sprintf("%s-%s", idPrefix, s.now().Format(dateLayout))
}
