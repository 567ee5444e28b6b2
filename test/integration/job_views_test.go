package integration_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIncrementViews_Concurrent - N конкурентных инкрементов дают ровно +N:
// счетчик растет на уровне БД, а не через read-modify-write. Тест идет мимо
// транзакции теста, нужен общий пул соединений, поэтому убирает за собой сам.
func TestIncrementViews_Concurrent(t *testing.T) {
	t.Parallel()

	db := helpers.ConnectTestDB(t)

	employer := &models.User{
		Name:         "Views Employer",
		Email:        fmt.Sprintf("views_employer_%d@test.com", time.Now().UnixNano()),
		PasswordHash: "password123",
		Role:         models.UserRoleEmployer,
	}
	helpers.CreateUser(t, db, employer)
	job := helpers.CreateTestJob(t, db, employer.ID, "Concurrent Views Job")
	t.Cleanup(func() {
		db.Delete(&models.Job{}, "id = ?", job.ID)
		db.Delete(&models.User{}, "id = ?", employer.ID)
	})

	repo := repositories.NewJobRepository()

	const viewers = 16
	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementViews(db, job.ID))
		}()
	}
	wg.Wait()

	var reloaded models.Job
	require.NoError(t, db.First(&reloaded, "id = ?", job.ID).Error)
	assert.Equal(t, viewers, reloaded.ViewsCount)
}
