package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendly/internal/category"
)

func TestService_Directory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().ListCategories(gomock.Any()).Return([]category.Category{
		{ID: "c-1", Name: "Groceries"},
		{ID: "c-2", Name: "Non classificato"},
	}, nil)

	svc := category.NewService(repo, "Non classificato")

	dir, err := svc.Directory(context.Background())
	require.NoError(t, err)
	assert.Len(t, dir, 2)
	assert.Equal(t, "c-2", svc.UncategorizedID(dir))
}

func TestService_Directory_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().ListCategories(gomock.Any()).Return(nil, errors.New("db down"))

	svc := category.NewService(repo, "Non classificato")

	_, err := svc.Directory(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestService_UncategorizedID_Missing(t *testing.T) {
	svc := category.NewService(nil, "Non classificato")
	assert.Empty(t, svc.UncategorizedID(category.Directory{{ID: "c-1", Name: "Groceries"}}))
}

func TestService_Create(t *testing.T) {
	type args struct {
		params category.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Defaults color and icon",
			args: args{params: category.CreateParams{Name: " Groceries ", LocalizedName: new("Alimentari")}},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						assert.Equal(t, "Groceries", c.Name)
						assert.Equal(t, "#6B7280", c.Color)
						assert.Equal(t, "fas fa-tag", c.Icon)
						c.ID = "c-new"

						return nil
					})
			},
		},
		{
			name:    "Blank name",
			args:    args{params: category.CreateParams{Name: "  "}},
			wantErr: category.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo, "Non classificato")
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "c-new", got.ID)
		})
	}
}
