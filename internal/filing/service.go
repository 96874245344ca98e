package filing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=filing
type Repository interface {
	GetFiling(ctx context.Context, id uuid.UUID) (*Filing, error)
	ListFilings(ctx context.Context, filter ListFilter) ([]*Filing, error)
	ListTransactions(ctx context.Context, filingID uuid.UUID) ([]*Transaction, error)
	LinkProfile(ctx context.Context, filingID, profileID uuid.UUID) error
	DeleteFiling(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	Status     *Status
	ProfileID  *uuid.UUID
	Unresolved bool // only filings with no resolved profile
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Filing, error) {
	return s.repo.GetFiling(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Filing, error) {
	return s.repo.ListFilings(ctx, filter)
}

// Unresolved lists filings whose filer name did not resolve to a profile.
// These stay visible for manual linking instead of being discarded.
func (s *Service) Unresolved(ctx context.Context) ([]*Filing, error) {
	return s.repo.ListFilings(ctx, ListFilter{Unresolved: true})
}

func (s *Service) Transactions(ctx context.Context, filingID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filingID)
}

// LinkProfile attaches a profile to a filing by operator decision. This is the
// only path that overrides the resolver's NO_MATCH outcome.
func (s *Service) LinkProfile(ctx context.Context, filingID, profileID uuid.UUID) error {
	if err := s.repo.LinkProfile(ctx, filingID, profileID); err != nil {
		return fmt.Errorf("linking filing %s to profile %s: %w", filingID, profileID, err)
	}

	return nil
}

// Delete removes a filing and, through ownership, its transactions. This is
// an administrative correction path; ingestion never deletes.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteFiling(ctx, id)
}
