package profile

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/normalize"
)

// Resolve maps a raw filer name to a canonical politician profile by
// normalized exact comparison against a snapshot of the registry. It is a
// pure query: callers fetch the snapshot per batch, there is no hidden cache.
//
// Exactly one normalized-equal politician yields an EXACT resolution. More
// than one means the registry's uniqueness invariant is violated; that is
// surfaced as an *AmbiguousMatchError, never resolved by picking. No
// candidate yields NO_MATCH, leaving the filing unresolved but visible for
// manual linking. Cities and lobby groups are resolved by their city field,
// not by filer-name matching, so only politicians are candidates here.
func Resolve(rawFilerName string, snapshot []Profile) (Resolution, error) {
	target := normalize.Name(rawFilerName)
	if target == "" {
		return Resolution{Quality: MatchNone}, nil
	}

	var matches []uuid.UUID

	for _, p := range snapshot {
		if p.Type != TypePolitician {
			continue
		}

		if normalize.Name(p.Name) == target {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return Resolution{Quality: MatchNone}, nil
	case 1:
		id := matches[0]
		return Resolution{ProfileID: &id, Quality: MatchExact}, nil
	default:
		return Resolution{Quality: MatchAmbiguous}, &AmbiguousMatchError{
			Name:       target,
			ProfileIDs: matches,
		}
	}
}

// SuggestCandidates returns politician profiles whose normalized name shares a
// prefix or substring with the raw filer name. Advisory output for operator
// triage only: a suggestion must never attach a filing to a profile.
func SuggestCandidates(rawFilerName string, snapshot []Profile, limit int) []Profile {
	target := normalize.Name(rawFilerName)
	if target == "" || limit <= 0 {
		return nil
	}

	var out []Profile

	for _, p := range snapshot {
		if p.Type != TypePolitician {
			continue
		}

		name := normalize.Name(p.Name)
		if name == "" {
			continue
		}

		if strings.Contains(target, name) || strings.Contains(name, target) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}

	return out
}
