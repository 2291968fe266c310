package services_test

import (
	"testing"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/qrpass"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	"gorm.io/gorm"
)

// issuePass mints one pass through the real workflow and returns its scanned
// payload text.
func issuePass(t *testing.T, db *gorm.DB, session, email string) string {
	t.Helper()
	mustCreateSession(t, db, session)
	svc := newIssuance(db, &fakeRenderer{}, &fakeMailer{})
	if _, err := svc.Issue(email, []string{session}); err != nil {
		t.Fatalf("issue: %v", err)
	}
	pass, err := repositories.NewPassRepository(db).GetBySessionAndEmail(session, email)
	if err != nil || pass == nil {
		t.Fatalf("fetch issued pass: %v", err)
	}
	return pass.Payload
}

func newRedemption(db *gorm.DB) *services.RedemptionService {
	return services.NewRedemptionService(
		repositories.NewPassRepository(db),
		qrpass.NewCodec("NEON36"),
	)
}

func TestRedemptionService_Redeem_ThenAlreadyRedeemed(t *testing.T) {
	db := newTestDB(t)
	payload := issuePass(t, db, "DINNER DAY-1", "a@x.com")
	svc := newRedemption(db)
	passRepo := repositories.NewPassRepository(db)

	first := svc.Redeem(payload, "DINNER DAY-1")
	if !first.Success || first.Code != services.OutcomeSuccess {
		t.Fatalf("first redeem outcome = %+v, want success", first)
	}
	if first.Audio != "success" {
		t.Errorf("audio = %q, want success", first.Audio)
	}
	if first.ParticipantEmail != "a@x.com" {
		t.Errorf("participant email = %q", first.ParticipantEmail)
	}
	if first.RedeemedAt == "" {
		t.Error("success outcome must carry the redemption timestamp")
	}

	pass, err := passRepo.GetBySessionAndEmail("DINNER DAY-1", "a@x.com")
	if err != nil || pass == nil {
		t.Fatalf("fetch pass: %v", err)
	}
	if !pass.IsRedeemed || pass.RedeemedAt == nil {
		t.Fatal("pass not marked redeemed in store")
	}
	firstTimestamp := *pass.RedeemedAt

	second := svc.Redeem(payload, "DINNER DAY-1")
	if second.Success || second.Code != services.OutcomeAlreadyRedeemed {
		t.Fatalf("second redeem outcome = %+v, want already-redeemed", second)
	}
	if second.Audio != "failure" {
		t.Errorf("audio = %q, want failure", second.Audio)
	}

	pass, err = passRepo.GetBySessionAndEmail("DINNER DAY-1", "a@x.com")
	if err != nil || pass == nil {
		t.Fatalf("refetch pass: %v", err)
	}
	if !pass.RedeemedAt.Equal(firstTimestamp) {
		t.Errorf("redemption timestamp changed: %v -> %v", firstTimestamp, *pass.RedeemedAt)
	}
}

func TestRedemptionService_Redeem_WrongSession(t *testing.T) {
	db := newTestDB(t)
	payload := issuePass(t, db, "DINNER DAY-1", "a@x.com")
	mustCreateSession(t, db, "LUNCH DAY-2")
	svc := newRedemption(db)

	outcome := svc.Redeem(payload, "LUNCH DAY-2")
	if outcome.Success || outcome.Code != services.OutcomeWrongSession {
		t.Fatalf("outcome = %+v, want wrong-session", outcome)
	}

	pass, err := repositories.NewPassRepository(db).GetBySessionAndEmail("DINNER DAY-1", "a@x.com")
	if err != nil || pass == nil {
		t.Fatalf("fetch pass: %v", err)
	}
	if pass.IsRedeemed {
		t.Error("wrong-session scan must not change state")
	}
}

func TestRedemptionService_Redeem_InvalidCode(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemption(db)

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not a payload"},
		{"missing field", `{"id":"X-1","session":"S","email":"a@x.com"}`},
		{"wrong keyword", `{"id":"X-1","session":"S","email":"a@x.com","keyword":"WRONG"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := svc.Redeem(tt.raw, "S")
			if outcome.Success || outcome.Code != services.OutcomeInvalidCode {
				t.Fatalf("outcome = %+v, want invalid-code", outcome)
			}
			if outcome.Audio != "failure" {
				t.Errorf("audio = %q, want failure", outcome.Audio)
			}
		})
	}
}

func TestRedemptionService_Redeem_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemption(db)
	codec := qrpass.NewCodec("NEON36")

	raw, err := codec.Encode("DINNERDAY1-deadbeef", "DINNER DAY-1", "a@x.com")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	outcome := svc.Redeem(raw, "DINNER DAY-1")
	if outcome.Success || outcome.Code != services.OutcomeNotFound {
		t.Fatalf("outcome = %+v, want not-found", outcome)
	}
}
