package backup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/starkeep/internal/database"
	"github.com/inovacc/starkeep/internal/gh"
	"github.com/inovacc/starkeep/internal/model"
)

type fakeClient struct {
	user    *model.User
	repos   []model.Repository
	userErr error
	listErr error
}

func (f *fakeClient) ListAllStarred(ctx context.Context, opts gh.ListOptions) ([]model.Repository, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.repos, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*model.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}

	return f.user, nil
}

func testRepos() []model.Repository {
	repos := make([]model.Repository, 0, 3)

	for i := int64(1); i <= 3; i++ {
		name := "repo-" + string(rune('0'+i))

		repos = append(repos, model.Repository{
			ID:       i,
			Name:     name,
			FullName: "alice/" + name,
			Owner:    model.User{Login: "alice", ID: 7},
			HTMLURL:  "https://github.com/alice/" + name,
			Stars:    int(i * 10),
			Language: "Go",
		})
	}

	return repos
}

func setupService(t *testing.T) (*Service, *database.Bolt, *fakeClient) {
	t.Helper()

	store, err := database.OpenBolt(filepath.Join(t.TempDir(), "test.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	client := &fakeClient{
		user:  &model.User{Login: "alice", ID: 7},
		repos: testRepos(),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(store, client, logger), store, client
}

func TestService_CreateListGetDelete(t *testing.T) {
	svc, _, _ := setupService(t)

	ctx := context.Background()

	meta, err := svc.Create(ctx, CreateOptions{Tags: []string{"infra"}})
	require.NoError(t, err)

	assert.Equal(t, "alice", meta.User)
	assert.Equal(t, 3, meta.Count)
	assert.False(t, meta.CreatedAt.IsZero())

	metas, err := svc.List()
	require.NoError(t, err)
	require.Len(t, metas, 1)

	assert.Equal(t, 3, metas[0].Count)
	assert.Equal(t, []string{"infra"}, metas[0].Tags)

	b, err := svc.Get(meta.ID)
	require.NoError(t, err)
	require.NotNil(t, b)

	require.Len(t, b.Repositories, 3)

	for i, repo := range b.Repositories {
		assert.Equal(t, int64(i+1), repo.ID, "snapshot preserves original order")
	}

	deleted, err := svc.Delete(meta.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	metas, err = svc.List()
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestService_Create_FreshIDsNeverCollide(t *testing.T) {
	svc, _, _ := setupService(t)

	ctx := context.Background()

	first, err := svc.Create(ctx, CreateOptions{})
	require.NoError(t, err)

	second, err := svc.Create(ctx, CreateOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "same-day backups must get distinct ids")

	metas, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, metas, 2)
}

func TestService_Create_OverwriteReusesMostRecentID(t *testing.T) {
	svc, _, client := setupService(t)

	ctx := context.Background()

	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	first, err := svc.Create(ctx, CreateOptions{})
	require.NoError(t, err)

	client.repos = testRepos()[:2]
	svc.now = func() time.Time { return base.Add(time.Hour) }

	second, err := svc.Create(ctx, CreateOptions{Overwrite: true})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Count)

	metas, err := svc.List()
	require.NoError(t, err)
	require.Len(t, metas, 1, "overwrite replaces, never accumulates")

	assert.Equal(t, 2, metas[0].Count)

	b, err := svc.Get(first.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Len(t, b.Repositories, 2, "data record fully replaced")
}

func TestService_Create_OverwriteWithoutPriorBackups(t *testing.T) {
	svc, _, _ := setupService(t)

	svc.now = func() time.Time {
		return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	}

	meta, err := svc.Create(context.Background(), CreateOptions{Overwrite: true})
	require.NoError(t, err)

	assert.Equal(t, "backup-2026-08-24", meta.ID, "no prior backup falls back to the date id")
}

func TestService_Create_ClientErrorPassesThrough(t *testing.T) {
	svc, _, client := setupService(t)

	wantErr := errors.New("boom")
	client.listErr = wantErr

	_, err := svc.Create(context.Background(), CreateOptions{})
	require.ErrorIs(t, err, wantErr, "API client errors are not reinterpreted")

	metas, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, metas, "a failed create leaves nothing behind")
}

func TestService_List_SkipsMalformedEntries(t *testing.T) {
	svc, store, _ := setupService(t)

	meta, err := svc.Create(context.Background(), CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, store.PutAll(map[string][]byte{
		database.Key("backup-broken", "meta"):  []byte("{not json"),
		database.Key("backup-no-id", "meta"):   []byte(`{"created_at":"2026-01-02T10:00:00Z","user":"alice"}`),
		database.Key("backup-no-date", "meta"): []byte(`{"id":"backup-no-date","user":"alice"}`),
		database.Key("backup-orphan", "data"):  []byte(`{}`),
		"stray-key":                            []byte(`{}`),
	}))

	metas, err := svc.List()
	require.NoError(t, err, "malformed entries must not fail the listing")

	require.Len(t, metas, 1)
	assert.Equal(t, meta.ID, metas[0].ID)
}

func TestService_List_MostRecentFirst(t *testing.T) {
	svc, _, _ := setupService(t)

	ctx := context.Background()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	for day := 0; day < 3; day++ {
		svc.now = func() time.Time { return base.AddDate(0, 0, day) }

		_, err := svc.Create(ctx, CreateOptions{})
		require.NoError(t, err)
	}

	metas, err := svc.List()
	require.NoError(t, err)
	require.Len(t, metas, 3)

	for i := 1; i < len(metas); i++ {
		assert.True(t, metas[i-1].CreatedAt.After(metas[i].CreatedAt),
			"listing must be sorted most recent first")
	}
}

func TestService_Get_Absent(t *testing.T) {
	svc, _, _ := setupService(t)

	b, err := svc.Get("backup-nonexistent")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestService_Delete_Absent(t *testing.T) {
	svc, store, _ := setupService(t)

	deleted, err := svc.Delete("backup-nonexistent")
	require.NoError(t, err)
	assert.False(t, deleted)

	var keys int

	require.NoError(t, store.Scan("", func(string, []byte) error {
		keys++

		return nil
	}))

	assert.Zero(t, keys, "deleting a missing backup performs no writes")
}

func TestService_ExportImport_RoundTrip(t *testing.T) {
	svc, _, _ := setupService(t)

	ctx := context.Background()

	meta, err := svc.Create(ctx, CreateOptions{Description: "before move", Tags: []string{"infra"}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stars.json")
	require.NoError(t, svc.Export(meta.ID, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version": "1.0"`)

	original, err := svc.Get(meta.ID)
	require.NoError(t, err)

	imported, err := svc.Import(path, ImportOptions{Overwrite: true})
	require.NoError(t, err)

	assert.Equal(t, meta.ID, imported.ID, "overwrite import keeps the original id")
	assert.True(t, imported.CreatedAt.After(meta.CreatedAt) || imported.CreatedAt.Equal(meta.CreatedAt),
		"import resets the creation timestamp to now")

	restored, err := svc.Get(meta.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)

	assert.Equal(t, original.Repositories, restored.Repositories,
		"repository sequence survives the round trip element-wise")
	assert.Equal(t, "before move", restored.Meta.Description)
	assert.Equal(t, []string{"infra"}, restored.Meta.Tags)
}

func TestService_Import_FreshIDByDefault(t *testing.T) {
	svc, _, _ := setupService(t)

	meta, err := svc.Create(context.Background(), CreateOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stars.json")
	require.NoError(t, svc.Export(meta.ID, path))

	imported, err := svc.Import(path, ImportOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, meta.ID, imported.ID, "default import never clobbers existing data")

	metas, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, metas, 2)
}

func TestService_Import_OptionOverrides(t *testing.T) {
	svc, _, _ := setupService(t)

	meta, err := svc.Create(context.Background(), CreateOptions{Description: "old", Tags: []string{"old"}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stars.json")
	require.NoError(t, svc.Export(meta.ID, path))

	imported, err := svc.Import(path, ImportOptions{
		Description: "new description",
		Tags:        []string{"fresh"},
	})
	require.NoError(t, err)

	assert.Equal(t, "new description", imported.Description)
	assert.Equal(t, []string{"fresh"}, imported.Tags)
}

func TestService_Import_Validation(t *testing.T) {
	svc, _, _ := setupService(t)

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: "definitely not json",
		},
		{
			name:    "unsupported version",
			content: `{"version":"99.0","meta":{"id":"backup-x","created_at":"2026-01-02T10:00:00Z","user":"alice","count":0},"repositories":[]}`,
		},
		{
			name:    "missing meta id",
			content: `{"version":"1.0","meta":{"created_at":"2026-01-02T10:00:00Z","user":"alice","count":0},"repositories":[]}`,
		},
		{
			name:    "missing user",
			content: `{"version":"1.0","meta":{"id":"backup-x","created_at":"2026-01-02T10:00:00Z","count":0},"repositories":[]}`,
		},
		{
			name:    "full name invariant broken",
			content: `{"version":"1.0","meta":{"id":"backup-x","created_at":"2026-01-02T10:00:00Z","user":"alice","count":1},"repositories":[{"id":1,"name":"repo","full_name":"bob/other","owner":{"login":"alice","id":7},"html_url":"https://github.com/alice/repo"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := svc.Import(path, ImportOptions{})
			require.Error(t, err)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr, "shape problems surface as ValidationError, got %v", err)
		})
	}
}

func TestService_Import_CountRecomputed(t *testing.T) {
	svc, _, _ := setupService(t)

	path := filepath.Join(t.TempDir(), "stars.json")

	// Count in the file lies; import trusts the repository list.
	content := `{"version":"1.0","meta":{"id":"backup-x","created_at":"2026-01-02T10:00:00Z","user":"alice","count":99},"repositories":[{"id":1,"name":"repo","full_name":"alice/repo","owner":{"login":"alice","id":7},"html_url":"https://github.com/alice/repo"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	imported, err := svc.Import(path, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, imported.Count)
}

func TestService_Export_Missing(t *testing.T) {
	svc, _, _ := setupService(t)

	err := svc.Export("backup-nonexistent", filepath.Join(t.TempDir(), "out.json"))
	require.Error(t, err)

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "backup-nonexistent", nfErr.ID)
}
