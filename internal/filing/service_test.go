package filing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*Service, *MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	return NewService(repo), repo
}

func TestGet(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()
	want := &Filing{ID: id, FilerName: "Jane Doe", Status: StatusProcessed}

	repo.EXPECT().GetFiling(gomock.Any(), id).Return(want, nil)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGet_NotFound(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()

	repo.EXPECT().GetFiling(gomock.Any(), id).Return(nil, ErrNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnresolved(t *testing.T) {
	svc, repo := newService(t)
	want := []*Filing{{ID: uuid.New(), FilerName: "Committee to Elect John Smith"}}

	repo.EXPECT().
		ListFilings(gomock.Any(), ListFilter{Unresolved: true}).
		Return(want, nil)

	got, err := svc.Unresolved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestList_StatusFilter(t *testing.T) {
	svc, repo := newService(t)
	status := StatusFailed
	want := []*Filing{{ID: uuid.New(), Status: StatusFailed}}

	repo.EXPECT().
		ListFilings(gomock.Any(), ListFilter{Status: &status}).
		Return(want, nil)

	got, err := svc.List(context.Background(), ListFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLinkProfile(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *MockRepository, filingID, profileID uuid.UUID)
		wantErr   string
	}{
		{
			name: "success",
			setupMock: func(m *MockRepository, filingID, profileID uuid.UUID) {
				m.EXPECT().LinkProfile(gomock.Any(), filingID, profileID).Return(nil)
			},
		},
		{
			name: "filing missing",
			setupMock: func(m *MockRepository, filingID, profileID uuid.UUID) {
				m.EXPECT().LinkProfile(gomock.Any(), filingID, profileID).Return(ErrNotFound)
			},
			wantErr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			filingID := uuid.New()
			profileID := uuid.New()
			tt.setupMock(repo, filingID, profileID)

			err := svc.LinkProfile(context.Background(), filingID, profileID)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactions(t *testing.T) {
	svc, repo := newService(t)
	filingID := uuid.New()
	want := []*Transaction{{ID: uuid.New(), FilingID: filingID, EntityName: "Acme Corp", Amount: 25000}}

	repo.EXPECT().ListTransactions(gomock.Any(), filingID).Return(want, nil)

	got, err := svc.Transactions(context.Background(), filingID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDelete(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()

	repo.EXPECT().DeleteFiling(gomock.Any(), id).Return(errors.New("connection refused"))

	err := svc.Delete(context.Background(), id)
	assert.ErrorContains(t, err, "connection refused")
}
