package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *repositories.Set {
	t.Helper()
	store, err := recordstore.Open(t.TempDir())
	require.NoError(t, err)
	return repositories.NewFileSet(store)
}

func createUser(t *testing.T, repos *repositories.Set, email string) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()}
	require.NoError(t, repos.Users.CreateUser(context.Background(), u))
	return u
}

func createProfile(t *testing.T, repos *repositories.Set, userID, name, roll string) {
	t.Helper()
	require.NoError(t, repos.Profiles.UpsertProfile(context.Background(), &models.Profile{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		RollNumber: roll,
		Stream:     "Science",
	}))
}

func createPost(t *testing.T, repos *repositories.Set, userID, content string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{ID: uuid.NewString(), UserID: userID, Content: content, CreatedAt: at}
	require.NoError(t, repos.Posts.CreatePost(context.Background(), p))
	return p
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// recordingAwarder captures awards instead of applying them.
type recordingAwarder struct {
	awards []string
}

func (a *recordingAwarder) AwardFor(_ context.Context, userID string, action Action) {
	a.awards = append(a.awards, userID+":"+string(action))
}
