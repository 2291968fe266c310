package services_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/qrpass"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	"gorm.io/gorm"
)

func newIssuance(db *gorm.DB, renderer *fakeRenderer, mail *fakeMailer) *services.IssuanceService {
	return services.NewIssuanceService(
		repositories.NewSessionRepository(db),
		repositories.NewPassRepository(db),
		qrpass.NewCodec("NEON36"),
		renderer,
		mail,
	)
}

func mustCreateSession(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	svc := services.NewSessionService(db, repositories.NewSessionRepository(db))
	if _, err := svc.Create(name); err != nil {
		t.Fatalf("create session %q: %v", name, err)
	}
}

func TestIssuanceService_Issue_Success(t *testing.T) {
	db := newTestDB(t)
	mustCreateSession(t, db, "DINNER DAY-1")
	renderer := &fakeRenderer{}
	mail := &fakeMailer{}
	svc := newIssuance(db, renderer, mail)

	count, err := svc.Issue("a@x.com", []string{"DINNER DAY-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if count != 1 {
		t.Fatalf("issued count = %d, want 1", count)
	}

	pass, err := repositories.NewPassRepository(db).GetBySessionAndEmail("DINNER DAY-1", "a@x.com")
	if err != nil {
		t.Fatalf("get pass: %v", err)
	}
	if pass == nil {
		t.Fatal("expected a stored pass")
	}
	if !regexp.MustCompile(`^DINNERDAY1-[0-9a-f]{8}$`).MatchString(pass.ID) {
		t.Errorf("identifier %q does not match expected pattern", pass.ID)
	}
	if pass.IsRedeemed {
		t.Error("new pass must start unredeemed")
	}
	if pass.Payload == "" {
		t.Error("embedded payload snapshot missing")
	}

	if len(mail.sent) != 1 || len(mail.sent[0]) != 1 {
		t.Fatalf("expected one delivery with one attachment, got %+v", mail.sent)
	}
	for _, path := range renderer.rendered {
		if fileExists(path) {
			t.Errorf("temp artifact %s not cleaned up", path)
		}
	}
}

func TestIssuanceService_Issue_SkipsDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	mustCreateSession(t, db, "DINNER DAY-1")
	svc := newIssuance(db, &fakeRenderer{}, &fakeMailer{})

	if _, err := svc.Issue("a@x.com", []string{"DINNER DAY-1"}); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	count, err := svc.Issue("a@x.com", []string{"DINNER DAY-1"})
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if count != 0 {
		t.Errorf("second issue count = %d, want 0", count)
	}

	var rows int64
	if err := db.Model(&models.Pass{}).
		Where("session_name = ? AND participant_email = ?", "DINNER DAY-1", "a@x.com").
		Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("pass rows = %d, want exactly 1", rows)
	}
}

func TestIssuanceService_Issue_SkipsUnknownSession(t *testing.T) {
	db := newTestDB(t)
	mustCreateSession(t, db, "DINNER DAY-1")
	mail := &fakeMailer{}
	svc := newIssuance(db, &fakeRenderer{}, mail)

	count, err := svc.Issue("a@x.com", []string{"NO SUCH SESSION", "DINNER DAY-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if count != 1 {
		t.Errorf("issued count = %d, want 1 (unknown session skipped)", count)
	}
}

func TestIssuanceService_Issue_DeliveryFailureDiscardsPasses(t *testing.T) {
	db := newTestDB(t)
	mustCreateSession(t, db, "DINNER DAY-1")
	renderer := &fakeRenderer{}
	mail := &fakeMailer{sendErr: errSMTPDown}
	svc := newIssuance(db, renderer, mail)

	count, err := svc.Issue("a@x.com", []string{"DINNER DAY-1"})
	if !errors.Is(err, services.ErrDeliveryFailed) {
		t.Fatalf("err = %v, want ErrDeliveryFailed", err)
	}
	if count != 0 {
		t.Errorf("issued count = %d, want 0", count)
	}

	total, err := repositories.NewPassRepository(db).CountAll()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 0 {
		t.Errorf("pass rows = %d, want 0 after delivery failure", total)
	}
	// Temp artifacts are removed even when delivery fails.
	for _, path := range renderer.rendered {
		if fileExists(path) {
			t.Errorf("temp artifact %s not cleaned up", path)
		}
	}
}

func TestIssuanceService_Issue_ValidatesInput(t *testing.T) {
	db := newTestDB(t)
	svc := newIssuance(db, &fakeRenderer{}, &fakeMailer{})

	if _, err := svc.Issue("", []string{"DINNER DAY-1"}); !errors.Is(err, services.ErrEmailRequired) {
		t.Errorf("empty email err = %v, want ErrEmailRequired", err)
	}
	if _, err := svc.Issue("a@x.com", nil); !errors.Is(err, services.ErrNoSessionsSelected) {
		t.Errorf("no sessions err = %v, want ErrNoSessionsSelected", err)
	}
}

func TestIssuanceService_Issue_MultipleSessionsOneDelivery(t *testing.T) {
	db := newTestDB(t)
	mustCreateSession(t, db, "DINNER DAY-1")
	mustCreateSession(t, db, "LUNCH DAY-2")
	mail := &fakeMailer{}
	svc := newIssuance(db, &fakeRenderer{}, mail)

	count, err := svc.Issue("a@x.com", []string{"DINNER DAY-1", "LUNCH DAY-2"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if count != 2 {
		t.Fatalf("issued count = %d, want 2", count)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("deliveries = %d, want a single combined email", len(mail.sent))
	}
	if len(mail.sent[0]) != 2 {
		t.Errorf("attachments = %d, want 2", len(mail.sent[0]))
	}
}
