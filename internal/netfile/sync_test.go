package netfile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/ingest"
	"github.com/cvwatch/sunlight/internal/profile"
)

func newSyncer(t *testing.T, agencies []Agency) (*Syncer, *MockAPI, *MockIngestor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := NewMockAPI(ctrl)
	ingestor := NewMockIngestor(ctrl)
	return NewSyncer(api, ingestor, agencies, 2), api, ingestor
}

func processedReport() *ingest.Report {
	return &ingest.Report{
		FilingID:   uuid.New(),
		Resolution: profile.MatchNone,
		Status:     filing.StatusProcessed,
	}
}

func TestSync(t *testing.T) {
	agencies := []Agency{
		{Name: "Chula Vista", NetFileID: "CVA", Enabled: true},
		{Name: "Dormant Town", NetFileID: "DRM", Enabled: false},
	}
	syncer, api, ingestor := newSyncer(t, agencies)

	api.EXPECT().Filings(gomock.Any(), "CVA", 2024).Return([]Filing{
		{ID: "f-1", FilerName: "Committee to Elect Jane Doe"},
	}, nil)
	api.EXPECT().Transactions(gomock.Any(), "f-1").Return([]Transaction{
		{ID: "t-1", TranType: "CONTRIBUTION", EntityName: "Acme Corp", Amount: 1000.5, Date: "2024-01-15"},
	}, nil)

	var gotFiling ingest.RawFiling
	var gotRows []ingest.RawRow
	ingestor.EXPECT().
		Ingest(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, raw ingest.RawFiling, rows []ingest.RawRow) (*ingest.Report, error) {
			gotFiling = raw
			gotRows = rows
			return processedReport(), nil
		})

	report, err := syncer.Sync(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Agencies)
	assert.Equal(t, 1, report.Filings)
	assert.Zero(t, report.Failed)

	assert.Equal(t, "Committee to Elect Jane Doe", gotFiling.FilerName)
	assert.Equal(t, "NETFILE:f-1", gotFiling.SourceReference)
	require.Len(t, gotRows, 1)
	assert.Equal(t, "Acme Corp", gotRows[0].EntityName)
	assert.Equal(t, "1000.5", gotRows[0].Amount)
	assert.Equal(t, "CONTRIBUTION", gotRows[0].TypeHint)
}

func TestSync_FailedFilingContinues(t *testing.T) {
	agencies := []Agency{{Name: "Chula Vista", NetFileID: "CVA", Enabled: true}}
	syncer, api, ingestor := newSyncer(t, agencies)

	api.EXPECT().Filings(gomock.Any(), "CVA", 2024).Return([]Filing{
		{ID: "f-1", FilerName: "Broken Committee"},
		{ID: "f-2", FilerName: "Fine Committee"},
	}, nil)
	api.EXPECT().Transactions(gomock.Any(), "f-1").Return(nil, nil)
	api.EXPECT().Transactions(gomock.Any(), "f-2").Return(nil, nil)

	ingestor.EXPECT().
		Ingest(gomock.Any(), ingest.RawFiling{FilerName: "Broken Committee", SourceReference: "NETFILE:f-1"}, gomock.Any()).
		Return(nil, errors.New("constraint violation"))
	ingestor.EXPECT().
		Ingest(gomock.Any(), ingest.RawFiling{FilerName: "Fine Committee", SourceReference: "NETFILE:f-2"}, gomock.Any()).
		Return(processedReport(), nil)

	report, err := syncer.Sync(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Filings)
	assert.Equal(t, 1, report.Failed)
}

func TestSync_FeedUnreachableAborts(t *testing.T) {
	agencies := []Agency{{Name: "Chula Vista", NetFileID: "CVA", Enabled: true}}
	syncer, api, _ := newSyncer(t, agencies)

	api.EXPECT().Filings(gomock.Any(), "CVA", 2024).Return(nil, errors.New("connection refused"))

	_, err := syncer.Sync(context.Background(), 2024)
	require.Error(t, err)
	assert.ErrorContains(t, err, "agency Chula Vista")
}

func TestSync_CollectsIngestWarnings(t *testing.T) {
	agencies := []Agency{{Name: "Chula Vista", NetFileID: "CVA", Enabled: true}}
	syncer, api, ingestor := newSyncer(t, agencies)

	api.EXPECT().Filings(gomock.Any(), "CVA", 2024).Return([]Filing{
		{ID: "f-1", FilerName: "Committee to Elect Jane Doe"},
	}, nil)
	api.EXPECT().Transactions(gomock.Any(), "f-1").Return(nil, nil)

	warned := processedReport()
	warned.Warnings = []string{"row 1: unparsable amount \"N/A\", recorded as 0"}
	ingestor.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).Return(warned, nil)

	report, err := syncer.Sync(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "NETFILE:f-1")
}
