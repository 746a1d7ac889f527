package app

import (
	"context"
	"sync"
	"time"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/application"
	"jobbridge/internal/domain/candidate"
	"jobbridge/internal/domain/event"
	"jobbridge/internal/domain/job"
	"jobbridge/internal/domain/payment"
	"jobbridge/internal/domain/placement"
)

func conflictErr() error {
	return common.NewError(common.CodeConflict, "record version changed", nil)
}

func notFoundErr(what string) error {
	return common.NewError(common.CodeNotFound, what+" not found", nil)
}

type fakeCandidateRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*candidate.Profile
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{items: make(map[common.UUID]*candidate.Profile)}
}

func (r *fakeCandidateRepo) Create(ctx context.Context, profile candidate.Profile) (*candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID.IsZero() {
		profile.ID = common.NewUUID()
	}
	profile.Version = 1
	stored := profile
	r.items[profile.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeCandidateRepo) GetByID(ctx context.Context, id common.UUID) (*candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, notFoundErr("candidate")
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeCandidateRepo) Update(ctx context.Context, profile candidate.Profile) (*candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[profile.ID]
	if !ok {
		return nil, notFoundErr("candidate")
	}
	if stored.Version != profile.Version {
		return nil, conflictErr()
	}
	profile.Version++
	next := profile
	r.items[profile.ID] = &next
	copied := next
	return &copied, nil
}

func (r *fakeCandidateRepo) mutate(id common.UUID, expectedVersion int, fn func(*candidate.Profile)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return notFoundErr("candidate")
	}
	if stored.Version != expectedVersion {
		return conflictErr()
	}
	fn(stored)
	stored.Version++
	return nil
}

func (r *fakeCandidateRepo) ConsumeFreeApplication(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.mutate(id, expectedVersion, func(p *candidate.Profile) {
		p.FreeApplicationsUsed++
	})
}

func (r *fakeCandidateRepo) ReleaseFreeApplication(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.mutate(id, expectedVersion, func(p *candidate.Profile) {
		if p.FreeApplicationsUsed > 0 {
			p.FreeApplicationsUsed--
		}
	})
}

func (r *fakeCandidateRepo) SetRegistrationApproved(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.mutate(id, expectedVersion, func(p *candidate.Profile) {
		p.RegistrationApproved = true
	})
}

func (r *fakeCandidateRepo) GrantPremium(ctx context.Context, id common.UUID, expectedVersion int, until time.Time) error {
	return r.mutate(id, expectedVersion, func(p *candidate.Profile) {
		p.Premium = true
		p.PremiumUntil = until
	})
}

func (r *fakeCandidateRepo) Deactivate(ctx context.Context, id common.UUID, expectedVersion int) error {
	return r.mutate(id, expectedVersion, func(p *candidate.Profile) {
		p.Active = false
	})
}

type fakeJobRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*job.Posting
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{items: make(map[common.UUID]*job.Posting)}
}

func (r *fakeJobRepo) Create(ctx context.Context, posting job.Posting) (*job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if posting.ID.IsZero() {
		posting.ID = common.NewUUID()
	}
	posting.Version = 1
	stored := posting
	r.items[posting.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, notFoundErr("job posting")
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeJobRepo) UpdateModerationStatus(ctx context.Context, id common.UUID, expectedVersion int, status job.ModerationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return notFoundErr("job posting")
	}
	if stored.Version != expectedVersion {
		return conflictErr()
	}
	stored.ModerationStatus = status
	stored.Version++
	return nil
}

func (r *fakeJobRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Posting
	for _, stored := range r.items {
		if stored.EmployerID == employerID {
			items = append(items, *stored)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) ListByModerationStatus(ctx context.Context, status job.ModerationStatus, limit, offset int) ([]job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Posting
	for _, stored := range r.items {
		if stored.ModerationStatus == status {
			items = append(items, *stored)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) IncrementViews(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.items[id]; ok {
		stored.Views++
	}
	return nil
}

func (r *fakeJobRepo) IncrementApplications(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.items[id]; ok {
		stored.Applications++
	}
	return nil
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{items: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if app.IdempotencyKey != "" && stored.IdempotencyKey == app.IdempotencyKey {
			copied := *stored
			return &copied, nil
		}
	}
	for _, stored := range r.items {
		if stored.CandidateID == app.CandidateID && stored.JobID == app.JobID && stored.Status != application.StatusWithdrawn {
			return nil, common.NewError(common.CodeDuplicateApplication, "already applied to this job", nil)
		}
	}
	if app.ID.IsZero() {
		app.ID = common.NewUUID()
	}
	app.Version = 1
	stored := app
	r.items[app.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, notFoundErr("application")
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByIdempotencyKey(ctx context.Context, key string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.IdempotencyKey == key {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, notFoundErr("application")
}

func (r *fakeApplicationRepo) FindActiveByPair(ctx context.Context, candidateID, jobID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.CandidateID == candidateID && stored.JobID == jobID && stored.Status != application.StatusWithdrawn {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, notFoundErr("application")
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[app.ID]
	if !ok {
		return nil, notFoundErr("application")
	}
	if stored.Version != app.Version {
		return nil, conflictErr()
	}
	app.Version++
	next := app
	r.items[app.ID] = &next
	copied := next
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, stored := range r.items {
		if stored.CandidateID == candidateID {
			items = append(items, *stored)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, stored := range r.items {
		if stored.JobID == jobID {
			items = append(items, *stored)
		}
	}
	return items, nil
}

type fakePaymentRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*payment.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{items: make(map[common.UUID]*payment.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p payment.Payment) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	p.Version = 1
	stored := p
	r.items[p.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id common.UUID) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, notFoundErr("payment")
	}
	copied := *stored
	return &copied, nil
}

func (r *fakePaymentRepo) Resolve(ctx context.Context, id common.UUID, expectedVersion int, status payment.Status, reviewerID common.UUID, reason string, resolvedAt time.Time) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, notFoundErr("payment")
	}
	if stored.Status != payment.StatusPending {
		return nil, common.NewError(common.CodeAlreadyResolved, "payment is already "+string(stored.Status), nil)
	}
	if stored.Version != expectedVersion {
		return nil, conflictErr()
	}
	stored.Status = status
	stored.ReviewerID = reviewerID
	stored.RejectionReason = reason
	stored.ResolvedAt = &resolvedAt
	stored.Version++
	copied := *stored
	return &copied, nil
}

func (r *fakePaymentRepo) ListPending(ctx context.Context, limit, offset int) ([]payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []payment.Payment
	for _, stored := range r.items {
		if stored.Status == payment.StatusPending {
			items = append(items, *stored)
		}
	}
	return items, nil
}

func (r *fakePaymentRepo) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []payment.Payment
	for _, stored := range r.items {
		if stored.CandidateID == candidateID {
			items = append(items, *stored)
		}
	}
	return items, nil
}

type fakePlacementRepo struct {
	mu            sync.Mutex
	byApplication map[common.UUID]*placement.Placement
}

func newFakePlacementRepo() *fakePlacementRepo {
	return &fakePlacementRepo{byApplication: make(map[common.UUID]*placement.Placement)}
}

func (r *fakePlacementRepo) CreateIfAbsent(ctx context.Context, p placement.Placement) (*placement.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byApplication[p.ApplicationID]; ok {
		copied := *existing
		return &copied, nil
	}
	if p.ID.IsZero() {
		p.ID = common.NewUUID()
	}
	stored := p
	r.byApplication[p.ApplicationID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakePlacementRepo) GetByID(ctx context.Context, id common.UUID) (*placement.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byApplication {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, notFoundErr("placement")
}

func (r *fakePlacementRepo) GetByApplication(ctx context.Context, applicationID common.UUID) (*placement.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byApplication[applicationID]
	if !ok {
		return nil, notFoundErr("placement")
	}
	copied := *stored
	return &copied, nil
}

func (r *fakePlacementRepo) MarkCollected(ctx context.Context, id common.UUID) (*placement.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byApplication {
		if stored.ID == id {
			if !stored.Collected {
				stored.Collected = true
				now := time.Now().UTC()
				stored.CollectedAt = &now
			}
			copied := *stored
			return &copied, nil
		}
	}
	return nil, notFoundErr("placement")
}

func (r *fakePlacementRepo) List(ctx context.Context, limit, offset int) ([]placement.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []placement.Placement
	for _, stored := range r.byApplication {
		items = append(items, *stored)
	}
	return items, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event.Event
}

func (n *recordingNotifier) Publish(_ context.Context, e event.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, 0, len(n.events))
	for _, e := range n.events {
		names = append(names, e.Name)
	}
	return names
}
