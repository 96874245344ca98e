package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/ingest"
	"github.com/cvwatch/sunlight/internal/metrics"
	"github.com/cvwatch/sunlight/internal/profile"
)

func newService(t *testing.T) (*ingest.Service, *ingest.MockRepository, *ingest.MockBatchTx, *ingest.MockProfileSource) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := ingest.NewMockRepository(ctrl)
	btx := ingest.NewMockBatchTx(ctrl)
	profiles := ingest.NewMockProfileSource(ctrl)

	svc := ingest.NewService(repo, profiles, metrics.New(prometheus.NewRegistry()))

	return svc, repo, btx, profiles
}

func TestService_Ingest_Success(t *testing.T) {
	svc, repo, btx, profiles := newService(t)

	filingID := uuid.New()
	raw := ingest.RawFiling{FilerName: "Committee to Elect Jane Doe", SourceReference: "F1"}

	profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginBatch(gomock.Any(), "F1").Return(btx, nil)
	btx.EXPECT().UpsertFiling(gomock.Any(), raw, gomock.Nil()).Return(filingID, nil)

	var captured *filing.Transaction

	btx.EXPECT().
		UpsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *filing.Transaction) (bool, error) {
			captured = tx
			return true, nil
		})
	btx.EXPECT().FinalizeFiling(gomock.Any(), filingID).Return(int64(100000), int64(0), nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	rows := []ingest.RawRow{
		{EntityName: "Acme PAC", Amount: "$1,000.00", TypeHint: "CONTRIBUTION"},
	}

	report, err := svc.Ingest(context.Background(), raw, rows)

	require.NoError(t, err)
	assert.Equal(t, filing.StatusProcessed, report.Status)
	assert.Equal(t, filingID, report.FilingID)
	assert.Equal(t, 1, report.ProcessedCount)
	assert.Equal(t, 1, report.InsertedCount)
	assert.Equal(t, 0, report.DuplicateCount)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, profile.MatchNone, report.Resolution)

	require.NotNil(t, captured)
	assert.Equal(t, int64(100000), captured.Amount)
	assert.Equal(t, filing.TxContribution, captured.Type)
	assert.Equal(t, filing.ExternalID("F1", 0, 100000, nil, "Acme PAC"), captured.ExternalID)
}

func TestService_Ingest_Idempotent(t *testing.T) {
	// The same batch twice: identical fingerprints, second pass all no-ops.
	raw := ingest.RawFiling{FilerName: "Committee to Elect Jane Doe", SourceReference: "F1"}
	rows := []ingest.RawRow{
		{EntityName: "Acme PAC", Amount: "$1,000.00", Date: "2024-03-15", TypeHint: "CONTRIBUTION"},
	}

	var externalIDs []string

	run := func(inserted bool) *ingest.Report {
		svc, repo, btx, profiles := newService(t)
		filingID := uuid.New()

		profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)
		repo.EXPECT().BeginBatch(gomock.Any(), "F1").Return(btx, nil)
		btx.EXPECT().UpsertFiling(gomock.Any(), raw, gomock.Nil()).Return(filingID, nil)
		btx.EXPECT().
			UpsertTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *filing.Transaction) (bool, error) {
				externalIDs = append(externalIDs, tx.ExternalID)
				return inserted, nil
			})
		btx.EXPECT().FinalizeFiling(gomock.Any(), filingID).Return(int64(100000), int64(0), nil)
		btx.EXPECT().Commit().Return(nil)
		btx.EXPECT().Rollback().Return(nil)

		report, err := svc.Ingest(context.Background(), raw, rows)
		require.NoError(t, err)

		return report
	}

	first := run(true)
	second := run(false)

	assert.Equal(t, 1, first.InsertedCount)
	assert.Equal(t, 0, second.InsertedCount)
	assert.Equal(t, 1, second.DuplicateCount)
	assert.Equal(t, first.ProcessedCount, second.ProcessedCount)

	require.Len(t, externalIDs, 2)
	assert.Equal(t, externalIDs[0], externalIDs[1])
}

func TestService_Ingest_ResolvesFilerName(t *testing.T) {
	svc, repo, btx, profiles := newService(t)

	jane := profile.Profile{ID: uuid.New(), Name: "Jane Doe", Type: profile.TypePolitician}
	raw := ingest.RawFiling{FilerName: " jane   doe ", SourceReference: "F2"}

	profiles.EXPECT().Snapshot(gomock.Any()).Return([]profile.Profile{jane}, nil)
	repo.EXPECT().BeginBatch(gomock.Any(), "F2").Return(btx, nil)
	btx.EXPECT().
		UpsertFiling(gomock.Any(), raw, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ ingest.RawFiling, profileID *uuid.UUID) (uuid.UUID, error) {
			require.NotNil(t, profileID)
			assert.Equal(t, jane.ID, *profileID)
			return uuid.New(), nil
		})
	btx.EXPECT().FinalizeFiling(gomock.Any(), gomock.Any()).Return(int64(0), int64(0), nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	report, err := svc.Ingest(context.Background(), raw, nil)

	require.NoError(t, err)
	assert.Equal(t, profile.MatchExact, report.Resolution)
}

func TestService_Ingest_AmbiguousRegistry(t *testing.T) {
	svc, repo, btx, profiles := newService(t)

	snapshot := []profile.Profile{
		{ID: uuid.New(), Name: "Jane Doe", Type: profile.TypePolitician},
		{ID: uuid.New(), Name: "JANE DOE", Type: profile.TypePolitician},
	}
	raw := ingest.RawFiling{FilerName: "Jane Doe", SourceReference: "F3"}

	profiles.EXPECT().Snapshot(gomock.Any()).Return(snapshot, nil)
	repo.EXPECT().BeginBatch(gomock.Any(), "F3").Return(btx, nil)
	// No profile is silently picked.
	btx.EXPECT().UpsertFiling(gomock.Any(), raw, gomock.Nil()).Return(uuid.New(), nil)
	btx.EXPECT().FinalizeFiling(gomock.Any(), gomock.Any()).Return(int64(0), int64(0), nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	report, err := svc.Ingest(context.Background(), raw, nil)

	require.NoError(t, err)
	assert.Equal(t, profile.MatchAmbiguous, report.Resolution)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "ambiguous match")
}

func TestService_Ingest_UnparsableAmountRecovered(t *testing.T) {
	svc, repo, btx, profiles := newService(t)

	raw := ingest.RawFiling{FilerName: "Jane Doe", SourceReference: "F4"}

	profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginBatch(gomock.Any(), "F4").Return(btx, nil)
	btx.EXPECT().UpsertFiling(gomock.Any(), raw, gomock.Nil()).Return(uuid.New(), nil)

	var captured *filing.Transaction

	btx.EXPECT().
		UpsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *filing.Transaction) (bool, error) {
			captured = tx
			return true, nil
		})
	btx.EXPECT().FinalizeFiling(gomock.Any(), gomock.Any()).Return(int64(0), int64(0), nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	rows := []ingest.RawRow{{EntityName: "Acme PAC", Amount: "N/A", TypeHint: "CONTRIBUTION"}}

	report, err := svc.Ingest(context.Background(), raw, rows)

	require.NoError(t, err)
	assert.Equal(t, 1, report.ProcessedCount, "recovered row still counts")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "unparsable amount")

	require.NotNil(t, captured)
	assert.Equal(t, int64(0), captured.Amount)
}

func TestService_Ingest_SignFallbackAndUnknownHint(t *testing.T) {
	svc, repo, btx, profiles := newService(t)

	raw := ingest.RawFiling{FilerName: "Jane Doe", SourceReference: "F5"}

	profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginBatch(gomock.Any(), "F5").Return(btx, nil)
	btx.EXPECT().UpsertFiling(gomock.Any(), raw, gomock.Nil()).Return(uuid.New(), nil)

	var captured []*filing.Transaction

	btx.EXPECT().
		UpsertTransaction(gomock.Any(), gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, tx *filing.Transaction) (bool, error) {
			captured = append(captured, tx)
			return true, nil
		})
	btx.EXPECT().FinalizeFiling(gomock.Any(), gomock.Any()).Return(int64(0), int64(0), nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	rows := []ingest.RawRow{
		{EntityName: "Print Shop", Amount: "-250.00"},               // sign fallback
		{EntityName: "Acme PAC", Amount: "100.00"},                  // sign fallback
		{EntityName: "Acme PAC", Amount: "50.00", TypeHint: "misc"}, // unknown hint
	}

	report, err := svc.Ingest(context.Background(), raw, rows)
	require.NoError(t, err)

	require.Len(t, captured, 3)
	assert.Equal(t, filing.TxExpenditure, captured[0].Type)
	assert.Equal(t, int64(25000), captured[0].Amount, "stored as absolute cents")
	assert.Equal(t, filing.TxContribution, captured[1].Type)
	assert.Equal(t, filing.TxUnknown, captured[2].Type)

	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "unrecognized type hint")
}

func TestService_Ingest_RowFailureAbortsBatch(t *testing.T) {
	svc, repo, btx, profiles := newService(t)

	raw := ingest.RawFiling{FilerName: "Jane Doe", SourceReference: "F6"}

	profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginBatch(gomock.Any(), "F6").Return(btx, nil)
	btx.EXPECT().UpsertFiling(gomock.Any(), raw, gomock.Nil()).Return(uuid.New(), nil)
	btx.EXPECT().
		UpsertTransaction(gomock.Any(), gomock.Any()).
		Return(false, errors.New("constraint violation"))
	// Explicit rollback before the failure is recorded, plus the deferred one.
	btx.EXPECT().Rollback().Return(nil).Times(2)
	repo.EXPECT().MarkFailed(gomock.Any(), raw).Return(nil)

	rows := []ingest.RawRow{{EntityName: "Acme PAC", Amount: "100.00"}}

	report, err := svc.Ingest(context.Background(), raw, rows)

	require.Error(t, err)
	assert.Equal(t, filing.StatusFailed, report.Status)
}

func TestService_Ingest_SnapshotUnavailable(t *testing.T) {
	svc, _, _, profiles := newService(t)

	profiles.EXPECT().Snapshot(gomock.Any()).Return(nil, errors.New("connection refused"))

	raw := ingest.RawFiling{FilerName: "Jane Doe", SourceReference: "F7"}

	report, err := svc.Ingest(context.Background(), raw, nil)

	require.Error(t, err)
	assert.Equal(t, filing.StatusFailed, report.Status)
}

func TestService_Ingest_MissingHeaderFields(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.Ingest(context.Background(), ingest.RawFiling{FilerName: "Jane Doe"}, nil)
	assert.Error(t, err)

	_, err = svc.Ingest(context.Background(), ingest.RawFiling{SourceReference: "F8"}, nil)
	assert.Error(t, err)
}
