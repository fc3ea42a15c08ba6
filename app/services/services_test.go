package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/auth"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
)

// setupDB points the global connection at a fresh in-memory sqlite database
// for the duration of one test. MaxOpenConns(1) keeps every query on the
// same connection, which is what ":memory:" requires.
func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
}

// setupFileDB is the same swap against a file-backed sqlite database. The
// shared-connection harness above serializes everything, so tests that need
// two transactions genuinely interleaving (concurrent checkout) use this
// one. BEGIN IMMEDIATE plus a busy timeout makes the second writer wait for
// the first instead of erroring.
func setupFileDB(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ecobazaar.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
}

func fp(v float64) *float64 { return &v }

func seedUser(t *testing.T, username, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func seedProduct(t *testing.T, sellerID uint, name string, price float64, qty int, status string, footprint *float64) models.Product {
	t.Helper()

	p := models.Product{
		Name:            name,
		Price:           price,
		Quantity:        qty,
		EcoRating:       5,
		CarbonFootprint: footprint,
		Status:          status,
		SellerID:        sellerID,
	}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}
