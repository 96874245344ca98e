package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=profile
type Repository interface {
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListProfiles(ctx context.Context, filter ListFilter) ([]Profile, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	UpdateCity(ctx context.Context, id uuid.UUID, city string) error
	UpdateImageURL(ctx context.Context, id uuid.UUID, url string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Name        string
	Type        Type
	City        string
	Description string
}

type ListFilter struct {
	Type *Type
	City *string
}

// Register creates a canonical profile. The (normalized name, type) uniqueness
// invariant is enforced by the store's unique index; a collision comes back as
// ErrDuplicateName. The engine never creates profiles implicitly during
// resolution, so every registry entry traces to an explicit registration.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Profile, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("profile name is required")
	}

	switch params.Type {
	case TypePolitician, TypeCity, TypeLobbyGroup:
	default:
		return nil, fmt.Errorf("unknown profile type: %q", params.Type)
	}

	p := &Profile{
		Name:        params.Name,
		Type:        params.Type,
		City:        params.City,
		Description: params.Description,
	}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Profile, error) {
	return s.repo.ListProfiles(ctx, filter)
}

// Snapshot returns the current registry state for the resolver. Callers
// re-fetch per ingestion batch rather than holding on to it.
func (s *Service) Snapshot(ctx context.Context) ([]Profile, error) {
	return s.repo.ListProfiles(ctx, ListFilter{})
}

// ApplyEdit performs one administrative field edit on behalf of editor (the
// acting principal supplied by the external identity service). A NameEdit is
// subject to the same uniqueness invariant as registration.
func (s *Service) ApplyEdit(ctx context.Context, id uuid.UUID, edit FieldEdit, editor string) error {
	var err error

	switch e := edit.(type) {
	case NameEdit:
		if e.Name == "" {
			return fmt.Errorf("profile name cannot be empty")
		}

		err = s.repo.UpdateName(ctx, id, e.Name)
	case DescriptionEdit:
		err = s.repo.UpdateDescription(ctx, id, e.Description)
	case CityEdit:
		err = s.repo.UpdateCity(ctx, id, e.City)
	case ImageURLEdit:
		err = s.repo.UpdateImageURL(ctx, id, e.URL)
	default:
		return fmt.Errorf("unsupported edit %T", edit)
	}

	if err != nil {
		return err
	}

	slog.Info("profile edited", "profile_id", id, "edit", fmt.Sprintf("%T", edit), "editor", editor)

	return nil
}
