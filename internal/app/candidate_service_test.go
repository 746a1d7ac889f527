package app

import (
	"context"
	"testing"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/candidate"
)

func TestRegisterResetsOwnedFlags(t *testing.T) {
	repo := newFakeCandidateRepo()
	svc := NewCandidateService(repo)

	created, err := svc.Register(context.Background(), candidate.Profile{
		FullName:             "Anna Weber",
		Industry:             "IT",
		Premium:              true,
		RegistrationApproved: true,
		FreeApplicationsUsed: 7,
		Active:               false,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Premium || created.RegistrationApproved || created.FreeApplicationsUsed != 0 {
		t.Fatalf("profile = %+v, client-supplied flags must be reset", created)
	}
	if !created.Active {
		t.Fatal("fresh profile must be active")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewCandidateService(newFakeCandidateRepo())

	tests := []struct {
		name    string
		profile candidate.Profile
	}{
		{name: "missing name", profile: candidate.Profile{Industry: "IT"}},
		{name: "missing industry", profile: candidate.Profile{FullName: "Anna Weber"}},
		{name: "negative experience", profile: candidate.Profile{FullName: "Anna Weber", Industry: "IT", YearsOfExperience: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.profile)
			if !common.Is(err, common.CodeValidation) {
				t.Fatalf("Register err = %v, want CodeValidation", err)
			}
		})
	}
}

func TestUpdateKeepsWorkflowState(t *testing.T) {
	repo := newFakeCandidateRepo()
	svc := NewCandidateService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, candidate.Profile{FullName: "Anna Weber", Industry: "IT"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Workflow state accrues after registration.
	if err := repo.SetRegistrationApproved(ctx, created.ID, created.Version); err != nil {
		t.Fatalf("SetRegistrationApproved: %v", err)
	}
	until := time.Now().Add(PremiumDuration)
	approved, _ := repo.GetByID(ctx, created.ID)
	if err := repo.GrantPremium(ctx, created.ID, approved.Version, until); err != nil {
		t.Fatalf("GrantPremium: %v", err)
	}

	updated, err := svc.Update(ctx, candidate.Profile{
		ID:       created.ID,
		FullName: "Anna Weber-Schmidt",
		Industry: "Finance",
		Skills:   []string{"Excel"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != "Anna Weber-Schmidt" || updated.Industry != "Finance" {
		t.Fatalf("profile fields not applied: %+v", updated)
	}
	if !updated.RegistrationApproved || !updated.Premium || !updated.PremiumUntil.Equal(until) {
		t.Fatalf("workflow state lost on profile update: %+v", updated)
	}
}

func TestDeactivateIsIdempotent(t *testing.T) {
	repo := newFakeCandidateRepo()
	svc := NewCandidateService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, candidate.Profile{FullName: "Anna Weber", Industry: "IT"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := svc.Deactivate(ctx, created.ID); err != nil {
			t.Fatalf("Deactivate %d: %v", i, err)
		}
	}
	stored, _ := repo.GetByID(ctx, created.ID)
	if stored.Active {
		t.Fatal("profile still active")
	}
}
