package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type classifies a canonical registry entry.
type Type string

const (
	TypePolitician Type = "POLITICIAN"
	TypeCity       Type = "CITY"
	TypeLobbyGroup Type = "LOBBY_GROUP"
)

var ErrNotFound = errors.New("profile not found")

// ErrDuplicateName is returned when registering a profile whose normalized
// name collides with an existing profile of the same type.
var ErrDuplicateName = errors.New("profile with the same normalized name and type already exists")

// Profile is a canonical entity filings resolve against: a politician, a city,
// or a lobby group. The pair (normalized name, type) is unique. Profiles are
// created by explicit registration, mutated only through FieldEdit, and never
// deleted by the engine.
type Profile struct {
	ID          uuid.UUID
	Name        string
	Type        Type
	City        string // jurisdiction tag, optional
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// MatchQuality classifies a filer-name-to-profile resolution.
type MatchQuality string

const (
	MatchExact     MatchQuality = "EXACT"
	MatchNone      MatchQuality = "NO_MATCH"
	MatchAmbiguous MatchQuality = "AMBIGUOUS"
)

// Resolution is the outcome of resolving a raw filer name. ProfileID is nil
// for NO_MATCH and AMBIGUOUS outcomes.
type Resolution struct {
	ProfileID *uuid.UUID
	Quality   MatchQuality
}

// AmbiguousMatchError reports a registry integrity violation: more than one
// politician profile normalizes to the same name. Resolution surfaces it
// instead of silently picking a profile.
type AmbiguousMatchError struct {
	Name       string // normalized
	ProfileIDs []uuid.UUID
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match: %d profiles normalize to %q", len(e.ProfileIDs), e.Name)
}

// FieldEdit is the closed set of administrative edits a profile accepts.
// Edits outside this set do not exist, so there is no runtime field whitelist
// to keep in sync with the schema.
type FieldEdit interface {
	fieldEdit()
}

type NameEdit struct{ Name string }

type DescriptionEdit struct{ Description string }

type CityEdit struct{ City string }

type ImageURLEdit struct{ URL string }

func (NameEdit) fieldEdit()        {}
func (DescriptionEdit) fieldEdit() {}
func (CityEdit) fieldEdit()        {}
func (ImageURLEdit) fieldEdit()    {}
