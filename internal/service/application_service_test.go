package service

import (
	"context"
	"testing"
	"time"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProgram(state *ledgerState) *entity.Program {
	university := &entity.University{Id: uuid.New(), Name: "ETH Zurich", Country: "Switzerland"}
	state.universities[university.Id] = university

	deadline := testNow.Add(30 * 24 * time.Hour)
	program := &entity.Program{
		Id:           uuid.New(),
		UniversityId: university.Id,
		Name:         "MSc Data Science",
		Degree:       "MSc",
		Department:   "Computer Science",
		Deadline:     &deadline,
	}
	state.programs[program.Id] = program
	return program
}

func newTestApplicationService(state *ledgerState) (IApplicationService, *captureFeed) {
	feed := &captureFeed{}
	svc := NewApplicationService(&fakeFactory{state: state}, fixedClock{now: testNow}, noopLogger{}, feed)
	return svc, feed
}

func TestCreateApplication(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{
		ProgramId: program.Id,
		Priority:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ApplicationStatusDraft), res.Status)
	assert.Equal(t, 5, res.Priority)
	// Deadline inherited from the program when the request omits one.
	require.NotNil(t, res.Deadline)
	assert.Equal(t, *program.Deadline, *res.Deadline)
}

func TestCreateApplicationUnknownProgram(t *testing.T) {
	state := newLedgerState()
	svc, _ := newTestApplicationService(state)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateApplicationRequest{
		ProgramId: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreateApplicationDuplicateProgram(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	userId := uuid.New()

	_, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestUpdateStatusWalksStateMachine(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, feed := newTestApplicationService(state)
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	res, err := svc.UpdateStatus(context.Background(), userId, created.Id, &dto.UpdateStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", res.Status)
	assert.Nil(t, res.SubmittedAt)

	res, err = svc.UpdateStatus(context.Background(), userId, created.Id, &dto.UpdateStatusRequest{Status: "submitted"})
	require.NoError(t, err)
	assert.Equal(t, "submitted", res.Status)
	require.NotNil(t, res.SubmittedAt)
	assert.Equal(t, testNow, *res.SubmittedAt)

	// Each transition produces an activity entry with before/after metadata.
	require.Len(t, state.activity, 2)
	last := state.activity[1]
	assert.Equal(t, entity.ActivityTypeApplicationUpdate, last.Type)
	assert.Equal(t, "in_progress", last.Metadata["from"])
	assert.Equal(t, "submitted", last.Metadata["to"])
	assert.Len(t, feed.entries, 2)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	// draft cannot jump straight to submitted
	_, err = svc.UpdateStatus(context.Background(), userId, created.Id, &dto.UpdateStatusRequest{Status: "submitted"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	// status unchanged, no activity recorded
	current, err := svc.Get(context.Background(), userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "draft", current.Status)
	assert.Empty(t, state.activity)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), userId, created.Id, &dto.UpdateStatusRequest{Status: "withdrawn"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	res, err := svc.UpdateStatus(context.Background(), userId, created.Id, &dto.UpdateStatusRequest{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, "draft", res.Status)
	assert.Empty(t, state.activity)
}

func TestApplicationOwnershipEnforced(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	// Another user sees a missing row, not someone else's application.
	_, err = svc.Get(context.Background(), uuid.New(), created.Id)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateApplicationFields(t *testing.T) {
	state := newLedgerState()
	program := seedProgram(state)
	svc, _ := newTestApplicationService(state)
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateApplicationRequest{ProgramId: program.Id})
	require.NoError(t, err)

	priority := 9
	notes := "Ask Prof. Keller for LOR"
	res, err := svc.Update(context.Background(), userId, created.Id, &dto.UpdateApplicationRequest{
		Priority: &priority,
		Notes:    &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Priority)
	require.NotNil(t, res.Notes)
	assert.Equal(t, notes, *res.Notes)
}
