package service

import (
	"context"
	"errors"
	"testing"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/config"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func testCreditConfig() *config.Config {
	return &config.Config{
		Credits: config.CreditConfig{
			StarterAllotment: 100,
			SopCost:          10,
			LorCost:          8,
			RefineCost:       3,
		},
	}
}

type docTestEnv struct {
	state    *ledgerState
	svc      IDocumentService
	userId   uuid.UUID
	appId    uuid.UUID
	feed     *captureFeed
	provider *fakeLLM
}

func newDocTestEnv(t *testing.T, totalCredits, usedCredits int) *docTestEnv {
	t.Helper()
	state := newLedgerState()
	program := seedProgram(state)

	userId := uuid.New()
	state.users[userId] = &entity.User{Id: userId, Email: "applicant@example.com", FullName: "Test Applicant"}
	state.accounts[userId] = &entity.CreditAccount{
		Id:           uuid.New(),
		UserId:       userId,
		TotalCredits: totalCredits,
		UsedCredits:  usedCredits,
		LastUpdated:  testNow,
	}

	appId := uuid.New()
	state.applications[appId] = &entity.Application{
		Id:        appId,
		UserId:    userId,
		ProgramId: program.Id,
		Status:    entity.ApplicationStatusInProgress,
	}

	feed := &captureFeed{}
	factory := &fakeFactory{state: state}
	creditSvc := NewCreditService(factory, fixedClock{now: testNow}, noopLogger{}, feed)
	provider := &fakeLLM{response: "Dear Admissions Committee, ..."}
	svc := NewDocumentService(factory, creditSvc, provider, nil, testCreditConfig(), fixedClock{now: testNow}, noopLogger{}, feed)

	return &docTestEnv{
		state:    state,
		svc:      svc,
		userId:   userId,
		appId:    appId,
		feed:     feed,
		provider: provider,
	}
}

func TestGenerateDocumentDebitsBeforeModelCall(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	res, err := env.svc.Generate(context.Background(), env.userId, &dto.GenerateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.CreditsUsed)
	assert.Equal(t, 90, res.RemainingCredits)
	assert.True(t, res.Document.AiGenerated)
	assert.Equal(t, "sop", res.Document.Type)
	assert.Equal(t, "Dear Admissions Committee, ...", res.Document.Content)
	assert.Equal(t, 1, env.provider.calls)

	// Ledger reflects the spend.
	assert.Equal(t, 10, env.state.accounts[env.userId].UsedCredits)
	require.Len(t, env.state.usage, 1)
	assert.Equal(t, entity.UsageCategorySopGeneration, env.state.usage[0].Type)
}

func TestGenerateLorUsesLorPricing(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	res, err := env.svc.Generate(context.Background(), env.userId, &dto.GenerateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "lor",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, res.CreditsUsed)
	assert.Equal(t, 92, res.RemainingCredits)
	require.Len(t, env.state.usage, 1)
	assert.Equal(t, entity.UsageCategoryLorGeneration, env.state.usage[0].Type)
}

func TestGenerateAbortsWhenCreditsInsufficient(t *testing.T) {
	env := newDocTestEnv(t, 100, 95)

	_, err := env.svc.Generate(context.Background(), env.userId, &dto.GenerateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientCredits, apperror.KindOf(err))

	// Model never invoked, nothing stored.
	assert.Equal(t, 0, env.provider.calls)
	assert.Empty(t, env.state.documents)
	assert.Equal(t, 95, env.state.accounts[env.userId].UsedCredits)
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	_, err := env.svc.Generate(context.Background(), env.userId, &dto.GenerateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "essay",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, env.provider.calls)
}

func TestGenerateSurfacesModelFailure(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)
	env.provider.err = errors.New("model unavailable")

	_, err := env.svc.Generate(context.Background(), env.userId, &dto.GenerateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
	})
	require.Error(t, err)
	assert.Empty(t, env.state.documents)
	// The debit committed before the model call and stays.
	assert.Equal(t, 10, env.state.accounts[env.userId].UsedCredits)
}

func TestUpdateDocumentBumpsVersion(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	created, err := env.svc.Create(context.Background(), env.userId, &dto.CreateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
		Title:         "My SOP",
		Content:       "First take",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)

	updated, err := env.svc.Update(context.Background(), env.userId, created.Id, &dto.UpdateDocumentRequest{
		Title:   "My SOP",
		Content: "Second take",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Second take", updated.Content)

	require.Len(t, env.state.activity, 1)
	assert.Equal(t, entity.ActivityTypeDocumentEdit, env.state.activity[0].Type)
}

func TestUpdateFinalizedDocumentRejected(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	created, err := env.svc.Create(context.Background(), env.userId, &dto.CreateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
		Title:         "My SOP",
	})
	require.NoError(t, err)

	_, err = env.svc.Update(context.Background(), env.userId, created.Id, &dto.UpdateDocumentRequest{
		Title:  "My SOP",
		Status: "final",
	})
	require.NoError(t, err)

	_, err = env.svc.Update(context.Background(), env.userId, created.Id, &dto.UpdateDocumentRequest{
		Title:   "My SOP",
		Content: "Too late",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestRefineChargesRefinementRate(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	created, err := env.svc.Create(context.Background(), env.userId, &dto.CreateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
		Title:         "My SOP",
		Content:       "First take",
	})
	require.NoError(t, err)

	env.provider.response = "Polished take"
	res, err := env.svc.Refine(context.Background(), env.userId, created.Id, &dto.RefineDocumentRequest{
		Instructions: "Make it more specific",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.CreditsUsed)
	assert.Equal(t, 97, res.RemainingCredits)
	assert.Equal(t, "Polished take", res.Document.Content)
	assert.Equal(t, 2, res.Document.Version)
	assert.True(t, res.Document.AiGenerated)
	require.Len(t, env.state.usage, 1)
	assert.Equal(t, entity.UsageCategoryRefinement, env.state.usage[0].Type)
}

func TestRefineRejectsEmptyDocument(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	created, err := env.svc.Create(context.Background(), env.userId, &dto.CreateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
		Title:         "My SOP",
	})
	require.NoError(t, err)

	_, err = env.svc.Refine(context.Background(), env.userId, created.Id, &dto.RefineDocumentRequest{
		Instructions: "Improve it",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, env.provider.calls)
	assert.Equal(t, 0, env.state.accounts[env.userId].UsedCredits)
}

func TestCreateDocumentRequiresOwnedApplication(t *testing.T) {
	env := newDocTestEnv(t, 100, 0)

	_, err := env.svc.Create(context.Background(), uuid.New(), &dto.CreateDocumentRequest{
		ApplicationId: env.appId,
		Type:          "sop",
		Title:         "My SOP",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
