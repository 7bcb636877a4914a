package request

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/audit"
	"flowx-relief/internal/service/email"
	"flowx-relief/internal/service/floodctx"
	"flowx-relief/internal/service/notification"
	"flowx-relief/internal/service/scope"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, input domain.CreateRequestInput) (*domain.Request, error)
	CreateDonation(ctx context.Context, input domain.CreateDonationInput) (*domain.Request, error)
	CreateSubsidyRequest(ctx context.Context, actor domain.Actor, subsidyID int64, input domain.CreateSubsidyRequestInput) (*domain.Request, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Request, error)
	ListForActor(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.Request, error)
	Transition(ctx context.Context, actor domain.Actor, id int64, input domain.TransitionInput) (*domain.Request, error)
}

type service struct {
	requestRepo repository.RequestRepository
	areaRepo    repository.AreaRepository
	subsidyRepo repository.SubsidyRepository
	uow         repository.UnitOfWork
	floods      floodctx.Resolver
	auditSvc    audit.Service
	notifSvc    notification.Service
	emailSvc    email.Service
}

func NewService(
	requestRepo repository.RequestRepository,
	areaRepo repository.AreaRepository,
	subsidyRepo repository.SubsidyRepository,
	uow repository.UnitOfWork,
	floods floodctx.Resolver,
	auditSvc audit.Service,
	notifSvc notification.Service,
	emailSvc email.Service,
) Service {
	return &service{
		requestRepo: requestRepo,
		areaRepo:    areaRepo,
		subsidyRepo: subsidyRepo,
		uow:         uow,
		floods:      floods,
		auditSvc:    auditSvc,
		notifSvc:    notifSvc,
		emailSvc:    emailSvc,
	}
}

// Create files a victim or shelter request for the citizen's house in the
// current flood.
func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateRequestInput) (*domain.Request, error) {
	if actor.Role != domain.RoleCitizen {
		return nil, domain.ErrForbidden
	}
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	lc, ok := domain.LifecycleFor(input.Kind)
	if !ok || (input.Kind != domain.KindVictim && input.Kind != domain.KindShelter) {
		return nil, domain.NewValidationError("kind", "must be one of victim, shelter")
	}

	house, err := s.areaRepo.HouseScope(ctx, sc.ID)
	if err != nil {
		return nil, fmt.Errorf("load house: %w", err)
	}
	if house == nil {
		return nil, domain.ErrUnauthorized
	}

	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoOpenRequest(ctx, house.HouseID, lc, flood.ID); err != nil {
		return nil, err
	}

	level := input.EmergencyLevel
	req := &domain.Request{
		Kind:                    input.Kind,
		Status:                  lc.Initial,
		FloodID:                 flood.ID,
		Title:                   strings.TrimSpace(input.Title),
		Message:                 strings.TrimSpace(input.Message),
		EmergencyLevel:          &level,
		Needs:                   input.Needs,
		HouseID:                 &house.HouseID,
		GNDivisionID:            &house.GNDivisionID,
		DivisionalSecretariatID: house.DivisionalSecretariatID,
		DistrictID:              &house.DistrictID,
		RequestedBy:             &actor.ID,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.afterCreate(ctx, actor, req)
	return req, nil
}

// CreateDonation records a public donation offer for a secretariat.
func (s *service) CreateDonation(ctx context.Context, input domain.CreateDonationInput) (*domain.Request, error) {
	ds, err := s.areaRepo.GetDivisionalSecretariat(ctx, input.DivisionalSecretariatID)
	if err != nil {
		return nil, fmt.Errorf("load divisional secretariat: %w", err)
	}
	if ds == nil {
		return nil, domain.NewValidationError("divisional_secretariat_id", "unknown divisional secretariat")
	}

	flood, err := s.floods.ResolveCurrentOrLatest(ctx)
	if err != nil {
		return nil, err
	}

	category := input.Category
	req := &domain.Request{
		Kind:                    domain.KindDonation,
		Status:                  domain.InitialDonationStatus,
		FloodID:                 flood.ID,
		Title:                   category,
		Message:                 strings.TrimSpace(input.Message),
		Category:                &category,
		DivisionalSecretariatID: ds.ID,
		DistrictID:              &ds.DistrictID,
		DonorName:               &input.FullName,
		DonorEmail:              &input.Email,
		DonorPhone:              input.Phone,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		if err := s.emailSvc.SendDonationReceivedEmail(ctx, input.Email, input.FullName, req.ID); err != nil {
			log.Printf("Failed to send donation receipt for %d: %v", req.ID, err)
		}
	}
	s.afterCreate(ctx, domain.Actor{}, req)
	return req, nil
}

// CreateSubsidyRequest assigns part of a subsidy to a house in the grama
// sevaka's division. Stock is only taken when an officer approves it.
func (s *service) CreateSubsidyRequest(ctx context.Context, actor domain.Actor, subsidyID int64, input domain.CreateSubsidyRequestInput) (*domain.Request, error) {
	if actor.Role != domain.RoleGramaSevaka {
		return nil, domain.ErrForbidden
	}
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return nil, err
	}

	house, err := s.areaRepo.HouseScope(ctx, input.HouseID)
	if err != nil {
		return nil, fmt.Errorf("load house: %w", err)
	}
	if house == nil || house.GNDivisionID != sc.ID {
		return nil, domain.ErrNotFound
	}

	subsidy, err := s.subsidyRepo.GetByID(ctx, subsidyID)
	if err != nil {
		return nil, fmt.Errorf("load subsidy: %w", err)
	}
	if subsidy == nil {
		return nil, domain.ErrNotFound
	}
	if subsidy.Status != domain.SubsidyActive {
		return nil, domain.NewValidationError("subsidy_id", "subsidy is not active")
	}
	if input.Quantity > subsidy.CurrentQuantity {
		return nil, domain.ErrInsufficientStock
	}

	lc, _ := domain.LifecycleFor(domain.KindSubsidy)
	if err := s.ensureNoOpenRequest(ctx, house.HouseID, lc, subsidy.FloodID); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	place := strings.TrimSpace(input.CollectionPlace)
	message := ""
	if input.Message != nil {
		message = strings.TrimSpace(*input.Message)
	}
	req := &domain.Request{
		Kind:                    domain.KindSubsidy,
		Status:                  lc.Initial,
		FloodID:                 subsidy.FloodID,
		Title:                   subsidy.Name,
		Message:                 message,
		Category:                &subsidy.Category,
		HouseID:                 &house.HouseID,
		GNDivisionID:            &house.GNDivisionID,
		DivisionalSecretariatID: house.DivisionalSecretariatID,
		DistrictID:              &house.DistrictID,
		RequestedBy:             &actor.ID,
		SubsidyID:               &subsidy.ID,
		Quantity:                &quantity,
		CollectionPlace:         &place,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.afterCreate(ctx, actor, req)
	return req, nil
}

func (s *service) ensureNoOpenRequest(ctx context.Context, houseID int64, lc *domain.Lifecycle, floodID int64) error {
	open, err := s.requestRepo.HasActiveRequest(ctx, houseID, lc.Kind, floodID, lc.ActiveStatuses())
	if err != nil {
		return fmt.Errorf("check open requests: %w", err)
	}
	if open {
		return domain.ErrDuplicateRequest
	}
	return nil
}

func (s *service) afterCreate(ctx context.Context, actor domain.Actor, req *domain.Request) {
	if s.auditSvc != nil {
		err := s.auditSvc.Record(ctx, audit.Entry{
			UserID:     actor.ID,
			Action:     domain.AuditCreateRequest,
			EntityType: string(req.Kind),
			EntityID:   strconv.FormatInt(req.ID, 10),
			NewValue:   map[string]interface{}{"status": req.Status, "flood_id": req.FloodID},
			Meta:       domain.RequestMetaFrom(ctx),
		})
		if err != nil {
			log.Printf("Failed to audit request %d: %v", req.ID, err)
		}
	}
	if s.notifSvc != nil {
		if err := s.notifSvc.NotifyRequestSubmitted(ctx, req); err != nil {
			log.Printf("Failed to notify staff about request %d: %v", req.ID, err)
		}
	}
}

func (s *service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Request, error) {
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	req, err := s.requestRepo.GetInScope(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// ListForActor returns the actor's requests for a view, newest first. The
// pending and approved views only cover the current flood; with no flood
// recorded at all they are empty.
func (s *service) ListForActor(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.Request, error) {
	if !filter.View.IsValid() {
		return nil, domain.NewValidationError("view", "must be one of pending, approved, history")
	}
	if filter.Kind != nil && !filter.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown request kind")
	}
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return nil, err
	}

	if filter.View.ScopedToFlood() && filter.FloodID == nil {
		flood, err := s.floods.ResolveCurrentOrLatest(ctx)
		if errors.Is(err, domain.ErrNoFlood) {
			return []domain.Request{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.FloodID = &flood.ID
	}
	if !filter.View.ScopedToFlood() {
		filter.FloodID = nil
	}

	return s.requestRepo.List(ctx, sc, filter)
}

// Transition moves a request along its lifecycle and applies the other
// fields in input that differ from the stored row. Nothing is written when
// nothing differs.
func (s *service) Transition(ctx context.Context, actor domain.Actor, id int64, input domain.TransitionInput) (*domain.Request, error) {
	sc, err := scope.ResolveScope(actor)
	if err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetInScope(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}

	lc, ok := domain.LifecycleFor(req.Kind)
	if !ok {
		return nil, fmt.Errorf("request %d has unknown kind %q", req.ID, req.Kind)
	}
	if !lc.HasStatus(input.Status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("must be one of %s", joinStatuses(lc.Statuses())))
	}

	changes := req.Diff(input)
	if changes.IsEmpty() {
		return req, nil
	}

	if changes.Status != nil {
		if err := scope.AuthorizeTransition(actor, req, *changes.Status); err != nil {
			return nil, err
		}
	} else if err := authorizeEdit(actor, lc, req); err != nil {
		return nil, err
	}

	from := req.Status
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		updated, err := repos.Requests.UpdateStatus(ctx, req.ID, from, sc, changes)
		if err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("status changed concurrently: %w", domain.ErrInvalidTransition)
		}
		if changes.Status == nil {
			return nil
		}
		return applySideEffects(ctx, repos, req, from, *changes.Status, input)
	})
	if err != nil {
		return nil, err
	}

	applyChanges(req, changes)
	s.afterTransition(ctx, actor, req, from)
	return req, nil
}

// authorizeEdit covers updates that keep the status: only staff who could
// move the request onward may touch it.
func authorizeEdit(actor domain.Actor, lc *domain.Lifecycle, req *domain.Request) error {
	if lc.IsTerminal(req.Status) {
		return domain.ErrInvalidTransition
	}
	if !lc.PermitsAny(actor.Role, req.Status) {
		return domain.ErrForbidden
	}
	return nil
}

func applySideEffects(ctx context.Context, repos repository.TxRepositories, req *domain.Request, from, to domain.RequestStatus, input domain.TransitionInput) error {
	switch {
	case req.Kind == domain.KindShelter && to == domain.StatusApproved:
		return reserveShelter(ctx, repos, req, input)
	case req.Kind == domain.KindSubsidy && to == domain.StatusApproved:
		return adjustSubsidy(ctx, repos, req, -1)
	case req.Kind == domain.KindSubsidy && from == domain.StatusApproved && to == domain.StatusRejected:
		return adjustSubsidy(ctx, repos, req, 1)
	}
	return nil
}

func reserveShelter(ctx context.Context, repos repository.TxRepositories, req *domain.Request, input domain.TransitionInput) error {
	shelterID := input.ShelterID
	if shelterID == nil {
		shelterID = req.ShelterID
	}
	if shelterID == nil {
		return domain.NewValidationError("shelter_id", "is required to approve a shelter request")
	}

	shelter, err := repos.Shelters.GetByID(ctx, *shelterID)
	if err != nil {
		return err
	}
	if shelter == nil || shelter.DivisionalSecretariatID != req.DivisionalSecretariatID {
		return domain.NewValidationError("shelter_id", "shelter not found in this divisional secretariat")
	}

	reserved, err := repos.Shelters.ReserveSlot(ctx, shelter.ID, req.DivisionalSecretariatID)
	if err != nil {
		return err
	}
	if !reserved {
		return fmt.Errorf("shelter %d is full or closed: %w", shelter.ID, domain.ErrInsufficientStock)
	}

	return repos.Shelters.CreateAssignment(ctx, &domain.ShelterAssignment{
		ShelterID: shelter.ID,
		RequestID: req.ID,
		HouseID:   req.HouseID,
	})
}

// adjustSubsidy moves the request's quantity out of (sign -1) or back into
// (sign 1) the subsidy stock.
func adjustSubsidy(ctx context.Context, repos repository.TxRepositories, req *domain.Request, sign int) error {
	if req.SubsidyID == nil || req.Quantity == nil {
		return fmt.Errorf("subsidy request %d has no subsidy or quantity", req.ID)
	}
	applied, err := repos.Subsidies.AdjustStock(ctx, *req.SubsidyID, sign*(*req.Quantity))
	if err != nil {
		return err
	}
	if !applied {
		return domain.ErrInsufficientStock
	}
	return nil
}

func applyChanges(req *domain.Request, c domain.RequestChanges) {
	if c.Status != nil {
		req.Status = *c.Status
	}
	if c.Remarks != nil {
		req.Remarks = c.Remarks
	}
	if c.EmergencyLevel != nil {
		req.EmergencyLevel = c.EmergencyLevel
	}
	if c.ShelterID != nil {
		req.ShelterID = c.ShelterID
	}
	if c.CollectionPlace != nil {
		req.CollectionPlace = c.CollectionPlace
	}
}

func (s *service) afterTransition(ctx context.Context, actor domain.Actor, req *domain.Request, from domain.RequestStatus) {
	if s.auditSvc != nil {
		err := s.auditSvc.Record(ctx, audit.Entry{
			UserID:     actor.ID,
			Action:     domain.AuditTransitionRequest,
			EntityType: string(req.Kind),
			EntityID:   strconv.FormatInt(req.ID, 10),
			OldValue:   map[string]interface{}{"status": from},
			NewValue:   map[string]interface{}{"status": req.Status, "remarks": req.Remarks},
			Meta:       domain.RequestMetaFrom(ctx),
		})
		if err != nil {
			log.Printf("Failed to audit transition of request %d: %v", req.ID, err)
		}
	}
	if s.notifSvc != nil && req.Status != from {
		if err := s.notifSvc.NotifyStatusChanged(ctx, req, from); err != nil {
			log.Printf("Failed to notify owner of request %d: %v", req.ID, err)
		}
	}
}

func joinStatuses(statuses []domain.RequestStatus) string {
	parts := make([]string, len(statuses))
	for i, st := range statuses {
		parts[i] = string(st)
	}
	return strings.Join(parts, ", ")
}
