package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/eladgl/jobscout/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDb(t *testing.T) *DbContext {

	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())

	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func addTestUser(t *testing.T, dbContext *DbContext, email string) entities.User {

	users := NewUsersRepository(dbContext.DB)
	require.NoError(t, users.Add(context.Background(), entities.User{
		Email:        email,
		SessionToken: "token",
		Keywords:     "golang",
	}))

	user, err := users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return *user
}

func testJob(listingID string) entities.Job {
	return entities.Job{
		Title:   "Backend Engineer",
		Company: "Acme",
		URL:     "https://www.linkedin.com/jobs/view/backend-engineer-at-acme-" + listingID,
	}
}

func Test_SaveNewForUser_SavesBatchAndSkipsDuplicatesOnReingest(t *testing.T) {

	dbContext := newTestDb(t)
	user := addTestUser(t, dbContext, "dev@example.com")
	repo := NewJobsRepository(dbContext.DB)

	batch := []entities.Job{testJob("3912004521"), testJob("4000000002")}

	assert.NoError(t, repo.SaveNewForUser(context.Background(), user.Email, batch))
	assert.NoError(t, repo.SaveNewForUser(context.Background(), user.Email, batch))

	jobs, err := repo.GetByUser(context.Background(), user.ID, "")
	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, entities.StatusReadyToApply, jobs[0].Status)
	assert.Equal(t, user.ID, jobs[0].UserID)
	assert.False(t, jobs[0].SavedAt.IsZero())
}

func Test_SaveNewForUser_SameListingForDifferentUsers_ShouldSaveBoth(t *testing.T) {

	dbContext := newTestDb(t)
	first := addTestUser(t, dbContext, "first@example.com")
	second := addTestUser(t, dbContext, "second@example.com")
	repo := NewJobsRepository(dbContext.DB)

	batch := []entities.Job{testJob("3912004521")}

	assert.NoError(t, repo.SaveNewForUser(context.Background(), first.Email, batch))
	assert.NoError(t, repo.SaveNewForUser(context.Background(), second.Email, batch))

	firstJobs, _ := repo.GetByUser(context.Background(), first.ID, "")
	secondJobs, _ := repo.GetByUser(context.Background(), second.ID, "")
	assert.Len(t, firstJobs, 1)
	assert.Len(t, secondJobs, 1)
}

func Test_SaveNewForUser_WhenUserUnknown_ShouldSkipWithoutError(t *testing.T) {

	dbContext := newTestDb(t)
	repo := NewJobsRepository(dbContext.DB)

	err := repo.SaveNewForUser(context.Background(), "ghost@example.com", []entities.Job{testJob("3912004521")})
	assert.NoError(t, err)
}

func Test_SaveNewForUser_WhenListingIdUnderivable_ShouldSkipThatJob(t *testing.T) {

	dbContext := newTestDb(t)
	user := addTestUser(t, dbContext, "dev@example.com")
	repo := NewJobsRepository(dbContext.DB)

	batch := []entities.Job{
		{Title: "Mystery", Company: "Acme", URL: "https://www.linkedin.com/jobs/collections/recommended"},
		testJob("3912004521"),
	}

	assert.NoError(t, repo.SaveNewForUser(context.Background(), user.Email, batch))

	jobs, err := repo.GetByUser(context.Background(), user.ID, "")
	assert.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, "3912004521", jobs[0].ListingID)
}

func Test_GetByUser_FiltersByStatus(t *testing.T) {

	dbContext := newTestDb(t)
	user := addTestUser(t, dbContext, "dev@example.com")
	repo := NewJobsRepository(dbContext.DB)

	require.NoError(t, repo.SaveNewForUser(context.Background(), user.Email,
		[]entities.Job{testJob("3912004521"), testJob("4000000002")}))

	jobs, _ := repo.GetByUser(context.Background(), user.ID, "")
	_, err := repo.UpdateStatus(context.Background(), jobs[0].ID, entities.StatusApplied)
	require.NoError(t, err)

	applied, err := repo.GetByUser(context.Background(), user.ID, entities.StatusApplied)
	assert.NoError(t, err)
	assert.Len(t, applied, 1)

	ready, err := repo.GetByUser(context.Background(), user.ID, entities.StatusReadyToApply)
	assert.NoError(t, err)
	assert.Len(t, ready, 1)
}

func Test_UpdateStatus_StampsAppliedAtOnce(t *testing.T) {

	dbContext := newTestDb(t)
	user := addTestUser(t, dbContext, "dev@example.com")
	repo := NewJobsRepository(dbContext.DB)

	require.NoError(t, repo.SaveNewForUser(context.Background(), user.Email, []entities.Job{testJob("3912004521")}))
	jobs, _ := repo.GetByUser(context.Background(), user.ID, "")

	applied, err := repo.UpdateStatus(context.Background(), jobs[0].ID, entities.StatusApplied)
	require.NoError(t, err)
	require.NotNil(t, applied)
	require.NotNil(t, applied.AppliedAt)
	firstAppliedAt := *applied.AppliedAt

	rejected, err := repo.UpdateStatus(context.Background(), jobs[0].ID, entities.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusRejected, rejected.Status)

	reapplied, err := repo.UpdateStatus(context.Background(), jobs[0].ID, entities.StatusApplied)
	require.NoError(t, err)
	require.NotNil(t, reapplied.AppliedAt)
	assert.Equal(t, firstAppliedAt.Unix(), reapplied.AppliedAt.Unix())
}

func Test_UpdateStatus_WhenJobMissing_ShouldReturnNil(t *testing.T) {

	dbContext := newTestDb(t)
	repo := NewJobsRepository(dbContext.DB)

	job, err := repo.UpdateStatus(context.Background(), 12345, entities.StatusApplied)
	assert.NoError(t, err)
	assert.Nil(t, job)
}

func Test_AddNote_ReturnsNotesNewestFirst(t *testing.T) {

	dbContext := newTestDb(t)
	user := addTestUser(t, dbContext, "dev@example.com")
	repo := NewJobsRepository(dbContext.DB)

	require.NoError(t, repo.SaveNewForUser(context.Background(), user.Email, []entities.Job{testJob("3912004521")}))
	jobs, _ := repo.GetByUser(context.Background(), user.ID, "")

	_, err := repo.AddNote(context.Background(), jobs[0].ID, user.ID, "first note")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	notes, err := repo.AddNote(context.Background(), jobs[0].ID, user.ID, "second note")
	require.NoError(t, err)

	require.Len(t, notes, 2)
	assert.Equal(t, "second note", notes[0].Content)
	assert.Equal(t, "first note", notes[1].Content)
}

func Test_AddNote_WhenNotOwner_ShouldReturnError(t *testing.T) {

	dbContext := newTestDb(t)
	owner := addTestUser(t, dbContext, "owner@example.com")
	other := addTestUser(t, dbContext, "other@example.com")
	repo := NewJobsRepository(dbContext.DB)

	require.NoError(t, repo.SaveNewForUser(context.Background(), owner.Email, []entities.Job{testJob("3912004521")}))
	jobs, _ := repo.GetByUser(context.Background(), owner.ID, "")

	_, err := repo.AddNote(context.Background(), jobs[0].ID, other.ID, "sneaky note")
	assert.ErrorIs(t, err, ErrNotOwner)
}
