package service

import (
	"context"
	"errors"
	"strings"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/logging"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/validation"
	"go.uber.org/zap"
)

// Outcome is the terminal state of a create attempt
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeUpdated  Outcome = "updated"
	OutcomeReturned Outcome = "returned"
	OutcomeBlocked  Outcome = "blocked"
	OutcomeFailed   Outcome = "failed"
	OutcomeInvalid  Outcome = "invalid"
)

// CreateOptions controls how a matching existing client is reconciled
type CreateOptions struct {
	// SkipDuplicateCheck skips the lookup before insert. The store's
	// unique name index still applies.
	SkipDuplicateCheck bool
	// UpdateIfExists merges the new non-name fields into the match
	UpdateIfExists bool
	// ReturnExistingIfDuplicate returns the match untouched; otherwise the
	// attempt is blocked. Ignored when UpdateIfExists is set.
	ReturnExistingIfDuplicate bool
}

// DefaultCreateOptions returns the existing client on a duplicate
func DefaultCreateOptions() CreateOptions {
	return CreateOptions{ReturnExistingIfDuplicate: true}
}

// Resolution describes how a create attempt ended
type Resolution struct {
	Outcome     Outcome
	Client      *domain.Client // Created, updated, returned, or the conflicting match when blocked
	IsDuplicate bool
}

// Success reports whether the caller ended up with a usable client
func (r *Resolution) Success() bool {
	switch r.Outcome {
	case OutcomeCreated, OutcomeUpdated, OutcomeReturned:
		return true
	}
	return false
}

// ClientService manages client lookup and duplicate-safe creation
type ClientService interface {
	// Search is the search-as-you-type lookup
	Search(ctx context.Context, term string) ([]*domain.Client, error)

	// CheckClientExists returns the client with the same normalized name, or nil
	CheckClientExists(ctx context.Context, companyName string) (*domain.Client, error)

	// CreateClientSafely creates a client unless one with the same name exists,
	// in which case opts decides whether to merge, return or block
	CreateClientSafely(ctx context.Context, in domain.ClientInput, opts CreateOptions) (*Resolution, error)

	// Submit validates raw form values and then calls CreateClientSafely
	Submit(ctx context.Context, values map[string]string, opts CreateOptions) (*Resolution, error)

	// UpdateClient validates raw form values and overwrites an existing client
	UpdateClient(ctx context.Context, id string, values map[string]string) (*domain.Client, error)

	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, limit int) ([]*domain.Client, error)
}

type clientService struct {
	clients repository.ClientRepository
	userID  string
	logger  *zap.Logger
}

// NewClientService creates a client service acting on behalf of userID
func NewClientService(clients repository.ClientRepository, userID string, logger *zap.Logger) ClientService {
	return &clientService{
		clients: clients,
		userID:  userID,
		logger:  logging.OrNop(logger).Named("clients"),
	}
}

func (s *clientService) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	return s.clients.Search(ctx, term)
}

func (s *clientService) CheckClientExists(ctx context.Context, companyName string) (*domain.Client, error) {
	return s.clients.FindByName(ctx, companyName)
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, limit int) ([]*domain.Client, error) {
	return s.clients.List(ctx, limit)
}

func (s *clientService) CreateClientSafely(ctx context.Context, in domain.ClientInput, opts CreateOptions) (*Resolution, error) {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return &Resolution{Outcome: OutcomeInvalid},
			validation.FieldError(validation.FieldCompanyName, "Company name is required")
	}
	if in.CreatedBy == "" {
		in.CreatedBy = s.userID
	}

	if !opts.SkipDuplicateCheck {
		existing, err := s.clients.FindByName(ctx, name)
		switch {
		case err != nil:
			// Fail open: the unique index still catches a real duplicate on insert
			s.logger.Warn("duplicate check failed, continuing with create",
				zap.String("company", name), zap.Error(err))
		case existing != nil:
			return s.resolveMatch(ctx, existing, in, opts)
		}
	}

	client := domain.NewClient(in)
	if err := s.clients.Insert(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			existing, ferr := s.clients.FindByName(ctx, name)
			if ferr == nil && existing != nil {
				s.logger.Info("store rejected duplicate company name",
					zap.String("company", name), zap.String("existing_id", existing.ID))
				return s.resolveMatch(ctx, existing, in, opts)
			}
		}
		s.logger.Error("failed to create client", zap.String("company", name), zap.Error(err))
		return &Resolution{Outcome: OutcomeFailed}, err
	}

	s.logger.Info("client created", zap.String("id", client.ID), zap.String("company", client.CompanyName))
	return &Resolution{Outcome: OutcomeCreated, Client: client}, nil
}

func (s *clientService) resolveMatch(ctx context.Context, existing *domain.Client, in domain.ClientInput, opts CreateOptions) (*Resolution, error) {
	if opts.UpdateIfExists {
		patch := domain.MergePatch(in)
		if patch.IsEmpty() {
			return &Resolution{Outcome: OutcomeUpdated, Client: existing, IsDuplicate: true}, nil
		}

		updated, err := s.clients.Update(ctx, existing.ID, patch)
		if err != nil {
			s.logger.Error("failed to merge into existing client",
				zap.String("id", existing.ID), zap.Error(err))
			return &Resolution{Outcome: OutcomeFailed, Client: existing, IsDuplicate: true}, err
		}

		s.logger.Info("merged duplicate into existing client", zap.String("id", updated.ID))
		return &Resolution{Outcome: OutcomeUpdated, Client: updated, IsDuplicate: true}, nil
	}

	if opts.ReturnExistingIfDuplicate {
		return &Resolution{Outcome: OutcomeReturned, Client: existing, IsDuplicate: true}, nil
	}

	return &Resolution{Outcome: OutcomeBlocked, Client: existing, IsDuplicate: true},
		&DuplicateError{Existing: existing}
}

func (s *clientService) Submit(ctx context.Context, values map[string]string, opts CreateOptions) (*Resolution, error) {
	form := validation.NewForm(validation.ClientSchema(), values)
	if !form.ValidateForm() {
		return &Resolution{Outcome: OutcomeInvalid}, form.Err()
	}

	return s.CreateClientSafely(ctx, InputFromValues(values), opts)
}

func (s *clientService) UpdateClient(ctx context.Context, id string, values map[string]string) (*domain.Client, error) {
	form := validation.NewForm(validation.ClientSchema(), values)
	if !form.ValidateForm() {
		return nil, form.Err()
	}

	in := InputFromValues(values)
	existing, err := s.clients.FindByName(ctx, in.CompanyName)
	if err != nil {
		s.logger.Warn("duplicate check failed, continuing with update", zap.String("id", id), zap.Error(err))
	} else if existing != nil && existing.ID != id {
		return nil, &DuplicateError{Existing: existing}
	}

	updated, err := s.clients.Update(ctx, id, patchFromInput(in))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			if existing, ferr := s.clients.FindByName(ctx, in.CompanyName); ferr == nil && existing != nil {
				return nil, &DuplicateError{Existing: existing}
			}
		}
		return nil, err
	}

	s.logger.Info("client updated", zap.String("id", updated.ID))
	return updated, nil
}

// InputFromValues maps form field names onto a ClientInput
func InputFromValues(values map[string]string) domain.ClientInput {
	return domain.ClientInput{
		CompanyName:   strings.TrimSpace(values[validation.FieldCompanyName]),
		ContactPerson: strings.TrimSpace(values[validation.FieldContactPerson]),
		Email:         strings.TrimSpace(values[validation.FieldEmail]),
		Phone:         strings.TrimSpace(values[validation.FieldPhone]),
		Address:       strings.TrimSpace(values[validation.FieldAddress]),
		Industry:      strings.TrimSpace(values[validation.FieldIndustry]),
		Notes:         strings.TrimSpace(values[validation.FieldNotes]),
	}
}

// ValuesFromClient is the inverse of InputFromValues, used to seed edit forms
func ValuesFromClient(c *domain.Client) map[string]string {
	return map[string]string{
		validation.FieldCompanyName:   c.CompanyName,
		validation.FieldContactPerson: c.ContactPerson,
		validation.FieldEmail:         c.Email,
		validation.FieldPhone:         c.Phone,
		validation.FieldAddress:       c.Address,
		validation.FieldIndustry:      c.Industry,
		validation.FieldNotes:         c.Notes,
	}
}

// patchFromInput overwrites every field, including clearing empty ones
func patchFromInput(in domain.ClientInput) domain.ClientPatch {
	return domain.ClientPatch{
		CompanyName:   &in.CompanyName,
		ContactPerson: &in.ContactPerson,
		Email:         &in.Email,
		Phone:         &in.Phone,
		Address:       &in.Address,
		Industry:      &in.Industry,
		Notes:         &in.Notes,
	}
}
