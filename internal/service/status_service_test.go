package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// fakeStatusRepository keeps status checks in memory, standing in for the
// document store.
type fakeStatusRepository struct {
	checks []repository.StatusCheck
	err    error
}

func (f *fakeStatusRepository) Insert(_ context.Context, check repository.StatusCheck) error {
	if f.err != nil {
		return f.err
	}
	f.checks = append(f.checks, check)
	return nil
}

func (f *fakeStatusRepository) List(_ context.Context, limit int64) ([]repository.StatusCheck, error) {
	if f.err != nil {
		return nil, f.err
	}
	if int64(len(f.checks)) > limit {
		return f.checks[:limit], nil
	}
	return f.checks, nil
}

func TestStatusCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := &fakeStatusRepository{}
	service := NewStatusService(repo, newTestValidator(), zerolog.Nop())

	check, err := service.Create(context.Background(), dto.CreateStatusRequest{ClientName: "frontend"})
	require.NoError(t, err)
	require.Equal(t, "frontend", check.ClientName)
	require.False(t, check.Timestamp.IsZero())

	_, err = uuid.Parse(check.ID)
	require.NoError(t, err, "status id must be a uuid string")
	require.Len(t, repo.checks, 1)
}

func TestStatusCreateRequiresClientName(t *testing.T) {
	service := NewStatusService(&fakeStatusRepository{}, newTestValidator(), zerolog.Nop())

	_, err := service.Create(context.Background(), dto.CreateStatusRequest{})
	require.Error(t, err)
}

func TestStatusList(t *testing.T) {
	repo := &fakeStatusRepository{}
	service := NewStatusService(repo, newTestValidator(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := service.Create(context.Background(), dto.CreateStatusRequest{ClientName: "probe"})
		require.NoError(t, err)
	}

	checks, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, checks, 3)
}
