package services_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/mailer"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite DB: %v", err)
	}

	// A fresh connection would see a fresh in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// fakeRenderer writes real temp files so tests can assert cleanup behavior.
type fakeRenderer struct {
	rendered  []string
	renderErr error
}

func (f *fakeRenderer) Render(payload, passID string) (string, error) {
	if f.renderErr != nil {
		return "", f.renderErr
	}
	file, err := os.CreateTemp("", fmt.Sprintf("qr_%s_*.png", passID))
	if err != nil {
		return "", err
	}
	if _, err := file.WriteString(payload); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	f.rendered = append(f.rendered, file.Name())
	return file.Name(), nil
}

// fakeMailer records deliveries and can be told to fail.
type fakeMailer struct {
	sent    [][]mailer.PassAttachment
	sendErr error
}

func (f *fakeMailer) SendPassBundle(recipient string, attachments []mailer.PassAttachment) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, attachments)
	return nil
}

var errSMTPDown = errors.New("smtp connection refused")

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
