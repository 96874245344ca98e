package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cvwatch/sunlight/internal/profile"
)

func newService(t *testing.T) (*Service, *MockRepository, *MockProfileSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	profiles := NewMockProfileSource(ctrl)
	return NewService(repo, profiles), repo, profiles
}

func TestRun(t *testing.T) {
	svc, repo, profiles := newService(t)

	janeID := uuid.New()
	smithID := uuid.New()
	lopezA := uuid.New()
	lopezB := uuid.New()
	snapshot := []profile.Profile{
		{ID: janeID, Name: "Jane Doe", Type: profile.TypePolitician},
		{ID: smithID, Name: "John Smith", Type: profile.TypePolitician},
		{ID: lopezA, Name: "Ana Lopez", Type: profile.TypePolitician},
		{ID: lopezB, Name: "ANA  LOPEZ", Type: profile.TypePolitician},
		{ID: uuid.New(), Name: "Chula Vista", Type: profile.TypeCity},
	}

	f1 := uuid.New()
	f2 := uuid.New()
	f3 := uuid.New()
	f4 := uuid.New()
	filings := []FilingRecord{
		{ID: f1, FilerName: "Jane Doe", SourceReference: "doc-1", ProfileID: &janeID},
		{ID: f2, FilerName: " jane   DOE ", SourceReference: "doc-2", ProfileID: &janeID},
		{ID: f3, FilerName: "Committee to Elect John Smith", SourceReference: "doc-3"},
		{ID: f4, FilerName: "Ana Lopez", SourceReference: "doc-4"},
	}

	profiles.EXPECT().Snapshot(gomock.Any()).Return(snapshot, nil)
	repo.EXPECT().ListFilingRecords(gomock.Any()).Return(filings, nil)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.FilingCount)
	assert.Equal(t, 2, report.ExactCount)

	require.Len(t, report.Unmatched, 2)
	assert.Equal(t, f3, report.Unmatched[0].FilingID)
	assert.Equal(t, []Candidate{{ProfileID: smithID, Name: "John Smith"}}, report.Unmatched[0].Suggestions)
	assert.Equal(t, f4, report.Unmatched[1].FilingID)

	require.Len(t, report.Ambiguous, 1)
	assert.Equal(t, "ana lopez", report.Ambiguous[0].Name)
	assert.ElementsMatch(t, []uuid.UUID{lopezA, lopezB}, report.Ambiguous[0].ProfileIDs)

	require.Len(t, report.PotentialDuplicates, 1)
	assert.Equal(t, "jane doe", report.PotentialDuplicates[0].FilerName)
	assert.ElementsMatch(t, []uuid.UUID{f1, f2}, report.PotentialDuplicates[0].FilingIDs)
}

func TestRun_CleanState(t *testing.T) {
	svc, repo, profiles := newService(t)
	janeID := uuid.New()

	profiles.EXPECT().Snapshot(gomock.Any()).Return([]profile.Profile{
		{ID: janeID, Name: "Jane Doe", Type: profile.TypePolitician},
	}, nil)
	repo.EXPECT().ListFilingRecords(gomock.Any()).Return([]FilingRecord{
		{ID: uuid.New(), FilerName: "Jane Doe", SourceReference: "doc-1", ProfileID: &janeID},
	}, nil)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExactCount)
	assert.Empty(t, report.Unmatched)
	assert.Empty(t, report.Ambiguous)
	assert.Empty(t, report.PotentialDuplicates)
}

func TestRun_SnapshotError(t *testing.T) {
	svc, _, profiles := newService(t)

	profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.Run(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestSuggest(t *testing.T) {
	svc, _, profiles := newService(t)
	smithID := uuid.New()

	profiles.EXPECT().Snapshot(gomock.Any()).Return([]profile.Profile{
		{ID: smithID, Name: "John Smith", Type: profile.TypePolitician},
		{ID: uuid.New(), Name: "Jane Doe", Type: profile.TypePolitician},
	}, nil)

	got, err := svc.Suggest(context.Background(), "Friends of John Smith")
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{ProfileID: smithID, Name: "John Smith"}}, got)
}
