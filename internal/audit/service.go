package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/normalize"
	"github.com/cvwatch/sunlight/internal/profile"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit

const suggestionLimit = 5

// FilingRecord is the slice of a filing the auditor needs.
type FilingRecord struct {
	ID              uuid.UUID
	FilerName       string
	SourceReference string
	ProfileID       *uuid.UUID
}

type Repository interface {
	ListFilingRecords(ctx context.Context) ([]FilingRecord, error)
}

type ProfileSource interface {
	Snapshot(ctx context.Context) ([]profile.Profile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileSource
}

func NewService(repo Repository, profiles ProfileSource) *Service {
	return &Service{repo: repo, profiles: profiles}
}

// Run re-resolves every committed filing's raw filer name against the
// current registry snapshot and reports match quality, unlinked filings
// with advisory candidates, invariant violations, and potential duplicate
// filings. Results are sorted so repeated runs over unchanged state
// produce identical reports.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	snapshot, err := s.profiles.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile snapshot: %w", err)
	}
	filings, err := s.repo.ListFilingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing filings: %w", err)
	}

	report := &Report{
		GeneratedAt:         time.Now().UTC(),
		FilingCount:         len(filings),
		Unmatched:           []UnmatchedFiling{},
		Ambiguous:           []AmbiguousName{},
		PotentialDuplicates: []DuplicateGroup{},
	}

	ambiguous := make(map[string][]uuid.UUID)
	byName := make(map[string][]uuid.UUID)

	for _, f := range filings {
		if name := normalize.Name(f.FilerName); name != "" {
			byName[name] = append(byName[name], f.ID)
		}

		resolution, err := profile.Resolve(f.FilerName, snapshot)
		if err != nil {
			var ambErr *profile.AmbiguousMatchError
			if !errors.As(err, &ambErr) {
				return nil, fmt.Errorf("resolving %q: %w", f.FilerName, err)
			}
			ambiguous[ambErr.Name] = ambErr.ProfileIDs
		}
		if resolution.Quality == profile.MatchExact {
			report.ExactCount++
		}

		if f.ProfileID == nil {
			report.Unmatched = append(report.Unmatched, UnmatchedFiling{
				FilingID:        f.ID,
				FilerName:       f.FilerName,
				SourceReference: f.SourceReference,
				Suggestions:     suggestions(f.FilerName, snapshot),
			})
		}
	}

	for name, ids := range ambiguous {
		report.Ambiguous = append(report.Ambiguous, AmbiguousName{Name: name, ProfileIDs: ids})
	}
	sort.Slice(report.Ambiguous, func(i, j int) bool {
		return report.Ambiguous[i].Name < report.Ambiguous[j].Name
	})

	for name, ids := range byName {
		if len(ids) > 1 {
			report.PotentialDuplicates = append(report.PotentialDuplicates, DuplicateGroup{
				FilerName: name,
				FilingIDs: ids,
			})
		}
	}
	sort.Slice(report.PotentialDuplicates, func(i, j int) bool {
		return report.PotentialDuplicates[i].FilerName < report.PotentialDuplicates[j].FilerName
	})

	return report, nil
}

// Suggest returns advisory linking candidates for one raw filer name.
// Used by the operator console when reviewing an unmatched filing.
func (s *Service) Suggest(ctx context.Context, rawFilerName string) ([]Candidate, error) {
	snapshot, err := s.profiles.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile snapshot: %w", err)
	}
	return suggestions(rawFilerName, snapshot), nil
}

func suggestions(rawFilerName string, snapshot []profile.Profile) []Candidate {
	matches := profile.SuggestCandidates(rawFilerName, snapshot, suggestionLimit)
	out := make([]Candidate, 0, len(matches))
	for _, p := range matches {
		out = append(out, Candidate{ProfileID: p.ID, Name: p.Name})
	}
	return out
}
