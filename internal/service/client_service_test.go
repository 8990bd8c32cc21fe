package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClientService(t *testing.T, repo *mockClientRepo) ClientService {
	return NewClientService(repo, "rep-1", zaptest.NewLogger(t))
}

func TestCreateClientSafely_NoMatchCreates(t *testing.T) {
	repo := &mockClientRepo{}
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "  Acme Corp ", Email: "sam@acme.io"}, DefaultCreateOptions())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.True(t, res.Success())
	assert.False(t, res.IsDuplicate)
	assert.Equal(t, "Acme Corp", res.Client.CompanyName)
	assert.Equal(t, "rep-1", res.Client.CreatedBy)
	assert.NotEmpty(t, res.Client.ID)
	assert.Equal(t, 1, repo.insertCalls)
}

func TestCreateClientSafely_ReturnsExistingByDefault(t *testing.T) {
	repo := &mockClientRepo{}
	existing := repo.seed(domain.ClientInput{CompanyName: "Acme Corp", Email: "old@acme.io"})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "ACME CORP", Email: "new@acme.io"}, DefaultCreateOptions())
	require.NoError(t, err)

	assert.Equal(t, OutcomeReturned, res.Outcome)
	assert.True(t, res.Success())
	assert.True(t, res.IsDuplicate)
	assert.Equal(t, existing.ID, res.Client.ID)
	assert.Equal(t, "old@acme.io", res.Client.Email)
	assert.Zero(t, repo.insertCalls)
	assert.Zero(t, repo.updateCalls)
	assert.Len(t, repo.clients, 1)
}

func TestCreateClientSafely_UpdateIfExistsMergesNonEmptyFields(t *testing.T) {
	repo := &mockClientRepo{}
	existing := repo.seed(domain.ClientInput{
		CompanyName:   "Acme Corp",
		ContactPerson: "Sam Lee",
		Email:         "old@acme.io",
	})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "acme corp", Email: "new@acme.io", Industry: "Retail"},
		CreateOptions{UpdateIfExists: true})
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdated, res.Outcome)
	assert.True(t, res.IsDuplicate)
	assert.Equal(t, existing.ID, res.Client.ID)
	assert.Equal(t, "Acme Corp", res.Client.CompanyName)
	assert.Equal(t, "Sam Lee", res.Client.ContactPerson)
	assert.Equal(t, "new@acme.io", res.Client.Email)
	assert.Equal(t, "Retail", res.Client.Industry)
	assert.Zero(t, repo.insertCalls)
}

func TestCreateClientSafely_UpdateIfExistsWithNothingToMerge(t *testing.T) {
	repo := &mockClientRepo{}
	existing := repo.seed(domain.ClientInput{CompanyName: "Acme Corp"})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "Acme Corp"}, CreateOptions{UpdateIfExists: true})
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdated, res.Outcome)
	assert.Equal(t, existing.ID, res.Client.ID)
	assert.Zero(t, repo.updateCalls)
}

func TestCreateClientSafely_UpdateFailure(t *testing.T) {
	repo := &mockClientRepo{updateErr: &repository.StoreError{Op: "update client", Err: errors.New("disk full")}}
	repo.seed(domain.ClientInput{CompanyName: "Acme Corp"})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "Acme Corp", Phone: "555-123-4567"}, CreateOptions{UpdateIfExists: true})
	require.Error(t, err)

	var serr *repository.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.False(t, res.Success())
	assert.True(t, res.IsDuplicate)
}

func TestCreateClientSafely_Blocked(t *testing.T) {
	repo := &mockClientRepo{}
	existing := repo.seed(domain.ClientInput{CompanyName: "Acme Corp"})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "Acme Corp"}, CreateOptions{})
	require.Error(t, err)

	var derr *DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, existing.ID, derr.Existing.ID)

	assert.Equal(t, OutcomeBlocked, res.Outcome)
	assert.False(t, res.Success())
	assert.True(t, res.IsDuplicate)
	assert.Equal(t, existing.ID, res.Client.ID)
	assert.Zero(t, repo.insertCalls)
}

func TestCreateClientSafely_EmptyNameIsInvalid(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		repo := &mockClientRepo{}
		svc := newTestClientService(t, repo)

		res, err := svc.CreateClientSafely(context.Background(),
			domain.ClientInput{CompanyName: name}, DefaultCreateOptions())

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, validation.FieldCompanyName)
		assert.Equal(t, OutcomeInvalid, res.Outcome)
		assert.False(t, res.Success())
		assert.Zero(t, repo.findCalls)
		assert.Zero(t, repo.insertCalls)
	}
}

func TestCreateClientSafely_PreCheckFailureFailsOpen(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &mockClientRepo{
		findErrs: []error{&repository.StoreError{Op: "find client by name", Err: errors.New("network down")}},
	}
	svc := NewClientService(repo, "rep-1", zap.New(core))

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "Acme Corp"}, DefaultCreateOptions())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Equal(t, 1, repo.insertCalls)
	require.Equal(t, 1, logs.FilterMessage("duplicate check failed, continuing with create").Len())
}

func TestCreateClientSafely_PreCheckFailureStillCaughtByConstraint(t *testing.T) {
	repo := &mockClientRepo{
		findErrs: []error{&repository.StoreError{Op: "find client by name", Err: errors.New("timeout")}},
	}
	existing := repo.seed(domain.ClientInput{CompanyName: "Acme Corp"})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "ACME CORP"}, DefaultCreateOptions())
	require.NoError(t, err)

	assert.Equal(t, OutcomeReturned, res.Outcome)
	assert.Equal(t, existing.ID, res.Client.ID)
	assert.Len(t, repo.clients, 1)
}

func TestCreateClientSafely_SkipDuplicateCheckKeepsConstraint(t *testing.T) {
	repo := &mockClientRepo{}
	existing := repo.seed(domain.ClientInput{CompanyName: "Acme Corp"})
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "acme corp"}, CreateOptions{SkipDuplicateCheck: true})

	var derr *DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, OutcomeBlocked, res.Outcome)
	assert.Equal(t, existing.ID, res.Client.ID)
	assert.Equal(t, 1, repo.insertCalls)
	assert.Equal(t, 1, repo.findCalls)
	assert.Len(t, repo.clients, 1)
}

func TestCreateClientSafely_SkipDuplicateCheckCreatesWhenUnique(t *testing.T) {
	repo := &mockClientRepo{}
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "Acme Corp"}, CreateOptions{SkipDuplicateCheck: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Zero(t, repo.findCalls)
}

func TestCreateClientSafely_InsertFailure(t *testing.T) {
	repo := &mockClientRepo{insertErr: &repository.StoreError{Op: "insert client", Err: errors.New("read-only database")}}
	svc := newTestClientService(t, repo)

	res, err := svc.CreateClientSafely(context.Background(),
		domain.ClientInput{CompanyName: "Acme Corp"}, DefaultCreateOptions())

	var serr *repository.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "insert client", serr.Op)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Nil(t, res.Client)
}

func TestSubmit_InvalidFormNeverReachesStore(t *testing.T) {
	repo := &mockClientRepo{}
	svc := newTestClientService(t, repo)

	res, err := svc.Submit(context.Background(), map[string]string{
		validation.FieldCompanyName: "Acme Corp",
		validation.FieldEmail:       "not-an-email",
	}, DefaultCreateOptions())

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Please enter a valid email address"}, verr.Fields[validation.FieldEmail])
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Zero(t, repo.findCalls)
	assert.Zero(t, repo.insertCalls)
}

func TestSubmit_ValidFormCreates(t *testing.T) {
	repo := &mockClientRepo{}
	svc := newTestClientService(t, repo)

	res, err := svc.Submit(context.Background(), map[string]string{
		validation.FieldCompanyName:   "Acme Corp",
		validation.FieldContactPerson: " Sam Lee ",
		validation.FieldPhone:         "(555) 123-4567",
	}, DefaultCreateOptions())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Equal(t, "Sam Lee", res.Client.ContactPerson)
	assert.Equal(t, "(555) 123-4567", res.Client.Phone)
}

func TestUpdateClient(t *testing.T) {
	repo := &mockClientRepo{}
	acme := repo.seed(domain.ClientInput{CompanyName: "Acme Corp", Email: "old@acme.io"})
	globex := repo.seed(domain.ClientInput{CompanyName: "Globex"})
	svc := newTestClientService(t, repo)
	ctx := context.Background()

	t.Run("case-only rename of itself", func(t *testing.T) {
		values := ValuesFromClient(acme)
		values[validation.FieldCompanyName] = "ACME Corp"
		values[validation.FieldEmail] = ""

		updated, err := svc.UpdateClient(ctx, acme.ID, values)
		require.NoError(t, err)
		assert.Equal(t, "ACME Corp", updated.CompanyName)
		assert.Empty(t, updated.Email)
	})

	t.Run("rename onto another client", func(t *testing.T) {
		values := ValuesFromClient(globex)
		values[validation.FieldCompanyName] = "acme corp"

		_, err := svc.UpdateClient(ctx, globex.ID, values)
		var derr *DuplicateError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, acme.ID, derr.Existing.ID)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := svc.UpdateClient(ctx, globex.ID, map[string]string{validation.FieldCompanyName: "G"})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateClient(ctx, "missing", map[string]string{validation.FieldCompanyName: "Initech"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestUserMessage_DistinctPerErrorClass(t *testing.T) {
	existing := &domain.Client{CompanyName: "Acme Corp"}
	errs := []error{
		validation.FieldError(validation.FieldEmail, "Please enter a valid email address"),
		&DuplicateError{Existing: existing},
		&repository.StoreError{Op: "insert client", Err: errors.New("disk full")},
		&NotificationDeliveryError{Recipient: "sam@acme.io", Err: errors.New("connection refused")},
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := UserMessage(err)
		require.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message %q", msg)
		seen[msg] = true
	}

	assert.Empty(t, UserMessage(nil))
	assert.Contains(t, UserMessage(&DuplicateError{Existing: existing}), `"Acme Corp"`)
	assert.Equal(t, "Please correct the following fields: email", UserMessage(errs[0]))
}
