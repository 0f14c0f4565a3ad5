package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/infrastructure/repository"
)

// newUnreachableDB opens a gorm handle against a closed port with pinging
// disabled, so every statement fails at the driver.
func newUnreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgres.Open("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1"),
		&gorm.Config{
			DisableAutomaticPing: true,
			Logger:               gormlogger.Discard,
		},
	)
	require.NoError(t, err)
	return db
}

func TestSettingRepository_WrapsDriverErrors(t *testing.T) {
	repo := repository.NewSettingRepository(newUnreachableDB(t))

	var perr *domain.PersistenceError
	_, err := repo.Get(context.Background(), domain.SettingWebhookBaseURL)
	require.ErrorAs(t, err, &perr)

	err = repo.Set(context.Background(), domain.SettingWebhookBaseURL, "https://app.example.com")
	require.ErrorAs(t, err, &perr)
}

func TestWebhookEventRepository_WrapsDriverErrors(t *testing.T) {
	repo := repository.NewWebhookEventRepository(newUnreachableDB(t))

	var perr *domain.PersistenceError
	err := repo.Log(context.Background(), &domain.WebhookEvent{Topic: "products/create", ShopDomain: "test.myshopify.com"})
	require.ErrorAs(t, err, &perr)
}
