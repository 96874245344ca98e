package profile_test

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

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    profile.RegisterParams
		setupMock func(m *profile.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: profile.RegisterParams{
				Name: "Jane Doe",
				Type: profile.TypePolitician,
				City: "Indio",
			},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().
					CreateProfile(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *profile.Profile) error {
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "DuplicateNormalizedName",
			params: profile.RegisterParams{
				Name: "JANE   DOE",
				Type: profile.TypePolitician,
			},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().
					CreateProfile(gomock.Any(), gomock.Any()).
					Return(profile.ErrDuplicateName)
			},
			wantErr: profile.ErrDuplicateName,
		},
		{
			name:   "EmptyName",
			params: profile.RegisterParams{Type: profile.TypeCity},
		},
		{
			name:   "UnknownType",
			params: profile.RegisterParams{Name: "Indio", Type: "COUNTY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := profile.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := profile.NewService(repo)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.setupMock == nil || tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_ApplyEdit(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		edit      profile.FieldEdit
		setupMock func(m *profile.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Name",
			edit: profile.NameEdit{Name: "Jane R. Doe"},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().UpdateName(gomock.Any(), id, "Jane R. Doe").Return(nil)
			},
		},
		{
			name:    "EmptyNameRejected",
			edit:    profile.NameEdit{},
			wantErr: true,
		},
		{
			name: "Description",
			edit: profile.DescriptionEdit{Description: "City council member"},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().UpdateDescription(gomock.Any(), id, "City council member").Return(nil)
			},
		},
		{
			name: "City",
			edit: profile.CityEdit{City: "Palm Springs"},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().UpdateCity(gomock.Any(), id, "Palm Springs").Return(nil)
			},
		},
		{
			name: "ImageURL",
			edit: profile.ImageURLEdit{URL: "https://example.org/jane.jpg"},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().UpdateImageURL(gomock.Any(), id, "https://example.org/jane.jpg").Return(nil)
			},
		},
		{
			name: "RepoError",
			edit: profile.CityEdit{City: "Indio"},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().UpdateCity(gomock.Any(), id, "Indio").Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := profile.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := profile.NewService(repo)
			err := svc.ApplyEdit(context.Background(), id, tt.edit, "ops@cvwatch")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := profile.NewMockRepository(ctrl)
	repo.EXPECT().
		ListProfiles(gomock.Any(), profile.ListFilter{}).
		Return([]profile.Profile{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := profile.NewService(repo)
	snapshot, err := svc.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Len(t, snapshot, 2)
}
