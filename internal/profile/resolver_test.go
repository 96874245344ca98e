package profile_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvwatch/sunlight/internal/profile"
)

func politician(name string) profile.Profile {
	return profile.Profile{ID: uuid.New(), Name: name, Type: profile.TypePolitician}
}

func TestResolve(t *testing.T) {
	jane := politician("Jane Doe")
	john := politician("John Roe")
	city := profile.Profile{ID: uuid.New(), Name: "Jane Doe", Type: profile.TypeCity}

	type testCase struct {
		name        string
		raw         string
		snapshot    []profile.Profile
		wantQuality profile.MatchQuality
		wantID      *uuid.UUID
	}

	tests := []testCase{
		{
			name:        "ExactMatch",
			raw:         "Jane Doe",
			snapshot:    []profile.Profile{jane, john},
			wantQuality: profile.MatchExact,
			wantID:      &jane.ID,
		},
		{
			name:        "ExactMatchDespiteFormatting",
			raw:         " jane   doe ",
			snapshot:    []profile.Profile{jane, john},
			wantQuality: profile.MatchExact,
			wantID:      &jane.ID,
		},
		{
			name:        "NoMatch",
			raw:         "Someone Else",
			snapshot:    []profile.Profile{jane, john},
			wantQuality: profile.MatchNone,
		},
		{
			name:        "EmptyName",
			raw:         "   ",
			snapshot:    []profile.Profile{jane},
			wantQuality: profile.MatchNone,
		},
		{
			name:        "EmptySnapshot",
			raw:         "Jane Doe",
			snapshot:    nil,
			wantQuality: profile.MatchNone,
		},
		{
			name:        "CityProfileIsNotACandidate",
			raw:         "Jane Doe",
			snapshot:    []profile.Profile{city},
			wantQuality: profile.MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := profile.Resolve(tt.raw, tt.snapshot)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuality, got.Quality)

			if tt.wantID == nil {
				assert.Nil(t, got.ProfileID)
				return
			}

			require.NotNil(t, got.ProfileID)
			assert.Equal(t, *tt.wantID, *got.ProfileID)
		})
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	// Two politicians normalizing to the same name violate the registry
	// invariant; resolution must surface that, not pick one.
	a := politician("Jane Doe")
	b := politician("JANE   DOE")

	got, err := profile.Resolve("Jane Doe", []profile.Profile{a, b})

	require.Error(t, err)
	assert.Equal(t, profile.MatchAmbiguous, got.Quality)
	assert.Nil(t, got.ProfileID)

	var ambErr *profile.AmbiguousMatchError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, "jane doe", ambErr.Name)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ambErr.ProfileIDs)
}

func TestResolve_SameIDForNormalizedEqualNames(t *testing.T) {
	jane := politician("Jane Doe")
	snapshot := []profile.Profile{jane, politician("John Roe")}

	variants := []string{"Jane Doe", "jane doe", "  JANE DOE", "jane\tdoe"}

	for _, v := range variants {
		got, err := profile.Resolve(v, snapshot)
		require.NoError(t, err)
		require.NotNil(t, got.ProfileID, "variant %q", v)
		assert.Equal(t, jane.ID, *got.ProfileID, "variant %q", v)
	}
}

func TestSuggestCandidates(t *testing.T) {
	jane := politician("Jane Doe")
	committee := politician("Committee to Elect Jane Doe")
	john := politician("John Roe")

	snapshot := []profile.Profile{jane, committee, john}

	got := profile.SuggestCandidates("Jane Doe for City Council", snapshot, 5)
	require.Len(t, got, 1)
	assert.Equal(t, jane.ID, got[0].ID)

	// Suggestion is advisory: the resolver itself still reports NO_MATCH.
	res, err := profile.Resolve("Jane Doe for City Council", snapshot)
	require.NoError(t, err)
	assert.Equal(t, profile.MatchNone, res.Quality)
}

func TestSuggestCandidates_Limit(t *testing.T) {
	snapshot := []profile.Profile{
		politician("Jane Doe"),
		politician("Jane Doe Jr"),
		politician("Jane Doe III"),
	}

	got := profile.SuggestCandidates("Jane Doe", snapshot, 2)
	assert.Len(t, got, 2)

	assert.Nil(t, profile.SuggestCandidates("Jane Doe", snapshot, 0))
	assert.Nil(t, profile.SuggestCandidates("", snapshot, 2))
}
