package app

import (
	"context"
	"testing"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/application"
	"jobbridge/internal/domain/event"
	"jobbridge/internal/domain/placement"
)

func hiredApplication() application.Application {
	now := time.Now().UTC()
	return application.Application{
		ID:          common.NewUUID(),
		CandidateID: common.NewUUID(),
		JobID:       common.NewUUID(),
		Status:      application.StatusHired,
		AppliedAt:   now,
		HiredAt:     &now,
	}
}

func TestPlacementCommission(t *testing.T) {
	tests := []struct {
		salary int
		want   int
	}{
		{salary: 60000, want: 30000},
		{salary: 55555, want: 27778}, // 27777.5 rounds half away from zero
		{salary: 1, want: 1},         // 0.5 rounds up
		{salary: 48000, want: 24000},
	}

	repo := newFakePlacementRepo()
	svc := NewPlacementService(repo, nil)
	for _, tc := range tests {
		created, err := svc.Create(context.Background(), hiredApplication(), tc.salary)
		if err != nil {
			t.Fatalf("Create(salary=%d): %v", tc.salary, err)
		}
		if created.CommissionAmount != tc.want {
			t.Errorf("Create(salary=%d) commission = %d, want %d", tc.salary, created.CommissionAmount, tc.want)
		}
		if created.CommissionRate != placement.CommissionRate {
			t.Errorf("Create(salary=%d) rate = %v, want %v", tc.salary, created.CommissionRate, placement.CommissionRate)
		}
	}
}

func TestPlacementRequiresHiredApplication(t *testing.T) {
	svc := NewPlacementService(newFakePlacementRepo(), nil)
	app := hiredApplication()
	app.Status = application.StatusShortlisted

	_, err := svc.Create(context.Background(), app, 60000)
	if !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("Create err = %v, want CodeInvalidState", err)
	}
}

func TestPlacementRejectsNonPositiveSalary(t *testing.T) {
	svc := NewPlacementService(newFakePlacementRepo(), nil)
	for _, salary := range []int{0, -1000} {
		_, err := svc.Create(context.Background(), hiredApplication(), salary)
		if !common.Is(err, common.CodeValidation) {
			t.Fatalf("Create(salary=%d) err = %v, want CodeValidation", salary, err)
		}
	}
}

func TestPlacementCreateIsIdempotent(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewPlacementService(newFakePlacementRepo(), notifier)
	ctx := context.Background()
	app := hiredApplication()

	first, err := svc.Create(ctx, app, 60000)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := svc.Create(ctx, app, 90000)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second Create returned %s, want the stored record %s", second.ID, first.ID)
	}
	if second.CommissionAmount != first.CommissionAmount {
		t.Fatalf("commission = %d, must stay %d", second.CommissionAmount, first.CommissionAmount)
	}

	// Only the inserting call publishes.
	names := notifier.names()
	if len(names) != 1 || names[0] != event.PlacementCreated {
		t.Fatalf("events = %v, want a single %s", names, event.PlacementCreated)
	}
}

func TestPlacementMarkCollected(t *testing.T) {
	svc := NewPlacementService(newFakePlacementRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, hiredApplication(), 60000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	collected, err := svc.MarkCollected(ctx, created.ID)
	if err != nil {
		t.Fatalf("MarkCollected: %v", err)
	}
	if !collected.Collected || collected.CollectedAt == nil {
		t.Fatalf("placement = %+v, want collected with timestamp", collected)
	}

	again, err := svc.MarkCollected(ctx, created.ID)
	if err != nil {
		t.Fatalf("repeated MarkCollected: %v", err)
	}
	if !again.CollectedAt.Equal(*collected.CollectedAt) {
		t.Fatal("collected_at moved on a repeated call")
	}
}
