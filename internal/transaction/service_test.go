package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

func validParams() transaction.CreateParams {
	return transaction.CreateParams{
		Amount:      decimal.RequireFromString("-10.00"),
		Description: "Test Transaction",
		Date:        time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC),
		CategoryID:  "c-1",
		AccountID:   "a-1",
		Confirmed:   true,
	}
}

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   bool
		errIs     error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.True(t, tx.Confirmed)
						assert.Equal(t, "c-1", tx.CategoryID)

						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "MissingDescription",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Description = "  "

				return p
			}()},
			wantErr: true,
			errIs:   transaction.ErrValidation,
		},
		{
			name: "MissingCategory",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.CategoryID = ""

				return p
			}()},
			wantErr: true,
			errIs:   transaction.ErrValidation,
		},
		{
			name: "MissingAccount",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.AccountID = ""

				return p
			}()},
			wantErr: true,
			errIs:   transaction.ErrValidation,
		},
		{
			name: "MissingDate",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Date = time.Time{}

				return p
			}()},
			wantErr: true,
			errIs:   transaction.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	type args struct {
		filter transaction.ListFilter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	unconfirmed := transaction.ListFilter{Confirmed: new(false)}

	tests := []testCase{
		{
			name: "Success",
			args: args{filter: unconfirmed},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), unconfirmed).
					Return([]*transaction.Transaction{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
			wantErr: false,
		},
		{
			name: "Error",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantLen: 0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	id := uuid.New()
	newCategory := "c-groceries"

	repo.EXPECT().ConfirmTransaction(gomock.Any(), id, &newCategory).Return(nil)
	require.NoError(t, svc.Confirm(context.Background(), id, &newCategory))

	repo.EXPECT().ConfirmTransaction(gomock.Any(), id, nil).Return(nil)
	require.NoError(t, svc.Confirm(context.Background(), id, nil))

	err := svc.Confirm(context.Background(), id, new(""))
	assert.ErrorIs(t, err, transaction.ErrValidation)
}

func TestService_Confirm_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any(), gomock.Nil()).Return(transaction.ErrNotFound)

	err := svc.Confirm(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}
