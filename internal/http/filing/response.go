package filing

import (
	"time"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
)

type filingResponse struct {
	ID                 uuid.UUID     `json:"id"`
	FilerName          string        `json:"filer_name"`
	SourceReference    string        `json:"source_reference"`
	ProfileID          *uuid.UUID    `json:"profile_id"`
	TotalContributions int64         `json:"total_contributions"`
	TotalExpenditures  int64         `json:"total_expenditures"`
	Status             filing.Status `json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
}

func toResponse(f *filing.Filing) filingResponse {
	return filingResponse{
		ID:                 f.ID,
		FilerName:          f.FilerName,
		SourceReference:    f.SourceReference,
		ProfileID:          f.ProfileID,
		TotalContributions: f.TotalContributions,
		TotalExpenditures:  f.TotalExpenditures,
		Status:             f.Status,
		CreatedAt:          f.CreatedAt,
	}
}

func toResponseList(filings []*filing.Filing) []filingResponse {
	resp := make([]filingResponse, len(filings))
	for i, f := range filings {
		resp[i] = toResponse(f)
	}

	return resp
}

type transactionResponse struct {
	ID         uuid.UUID     `json:"id"`
	FilingID   uuid.UUID     `json:"filing_id"`
	EntityName string        `json:"entity_name"`
	Amount     int64         `json:"amount"`
	Date       *time.Time    `json:"date,omitempty"`
	Type       filing.TxType `json:"type"`
	ExternalID string        `json:"external_id"`
	Memo       string        `json:"memo,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

func toTransactionList(txs []*filing.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = transactionResponse{
			ID:         tx.ID,
			FilingID:   tx.FilingID,
			EntityName: tx.EntityName,
			Amount:     tx.Amount,
			Date:       tx.Date,
			Type:       tx.Type,
			ExternalID: tx.ExternalID,
			Memo:       tx.Memo,
			CreatedAt:  tx.CreatedAt,
		}
	}

	return resp
}
