package movement_test

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

	"github.com/danielrv/finmov/internal/movement"
)

func TestService_Create(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)

	type args struct {
		params movement.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *movement.MockRepository)
		wantFields []string
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: movement.CreateParams{
					Description: "Monthly salary",
					Amount:      decimal.RequireFromString("3000.00"),
					Category:    movement.CategoryIncome,
					Date:        yesterday,
					Notes:       "January salary",
				},
			},
			setupMock: func(m *movement.MockRepository) {
				m.EXPECT().
					CreateMovement(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mv *movement.Movement) error {
						mv.ID = uuid.New()
						mv.CreatedAt = time.Now()
						mv.UpdatedAt = mv.CreatedAt
						return nil
					})
			},
		},
		{
			name: "EveryFieldInvalid",
			args: args{
				params: movement.CreateParams{
					Description: "  ",
					Amount:      decimal.Zero,
					Category:    movement.Category("transfer"),
					Date:        time.Now().AddDate(0, 0, 2),
				},
			},
			wantFields: []string{"amount", "category", "date", "description"},
			wantErr:    true,
		},
		{
			name: "NegativeAmount",
			args: args{
				params: movement.CreateParams{
					Description: "Groceries",
					Amount:      decimal.RequireFromString("-150.50"),
					Category:    movement.CategoryExpense,
					Date:        yesterday,
				},
			},
			wantFields: []string{"amount"},
			wantErr:    true,
		},
		{
			name: "RepoError",
			args: args{
				params: movement.CreateParams{
					Description: "Groceries",
					Amount:      decimal.RequireFromString("150.50"),
					Category:    movement.CategoryExpense,
					Date:        yesterday,
				},
			},
			setupMock: func(m *movement.MockRepository) {
				m.EXPECT().
					CreateMovement(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := movement.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := movement.NewService(repo)
			got, err := svc.Create(context.Background(), uuid.New(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if len(tt.wantFields) > 0 {
					var vErr *movement.ValidationError
					require.ErrorAs(t, err, &vErr)

					for _, field := range tt.wantFields {
						assert.Contains(t, vErr.Fields, field)
					}

					assert.Len(t, vErr.Fields, len(tt.wantFields))
				}

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_OwnerFromCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *movement.Movement) error {
			assert.Equal(t, ownerID, mv.OwnerID)
			return nil
		})

	svc := movement.NewService(repo)

	_, err := svc.Create(context.Background(), ownerID, movement.CreateParams{
		Description: "Salary",
		Amount:      decimal.NewFromInt(100),
		Category:    movement.CategoryIncome,
		Date:        time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()
	yesterday := time.Now().AddDate(0, 0, -1)

	existing := func() *movement.Movement {
		return &movement.Movement{
			ID:          id,
			OwnerID:     ownerID,
			Description: "Groceries",
			Amount:      decimal.RequireFromString("150.50"),
			Category:    movement.CategoryExpense,
			Date:        yesterday,
			Notes:       "weekly run",
		}
	}

	t.Run("PartialMerge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := movement.NewMockRepository(ctrl)
		repo.EXPECT().
			GetMovement(gomock.Any(), id, ownerID).
			Return(existing(), nil)
		repo.EXPECT().
			UpdateMovement(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mv *movement.Movement) error {
				assert.Equal(t, "175.00", mv.Amount.StringFixed(2))
				assert.Equal(t, "Groceries", mv.Description)
				assert.Equal(t, "", mv.Notes)
				assert.Equal(t, ownerID, mv.OwnerID)
				return nil
			})

		svc := movement.NewService(repo)

		amount := decimal.RequireFromString("175.00")
		notes := ""

		got, err := svc.Update(context.Background(), ownerID, id, movement.UpdateParams{
			Amount: &amount,
			Notes:  &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, "175.00", got.Amount.StringFixed(2))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := movement.NewMockRepository(ctrl)
		repo.EXPECT().
			GetMovement(gomock.Any(), id, ownerID).
			Return(nil, movement.ErrNotFound)

		svc := movement.NewService(repo)

		_, err := svc.Update(context.Background(), ownerID, id, movement.UpdateParams{})
		assert.ErrorIs(t, err, movement.ErrNotFound)
	})

	t.Run("InvalidMergeNotPersisted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := movement.NewMockRepository(ctrl)
		repo.EXPECT().
			GetMovement(gomock.Any(), id, ownerID).
			Return(existing(), nil)

		svc := movement.NewService(repo)

		amount := decimal.Zero

		_, err := svc.Update(context.Background(), ownerID, id, movement.UpdateParams{
			Amount: &amount,
		})

		var vErr *movement.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "amount")
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	id := uuid.New()

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteMovement(gomock.Any(), id, ownerID).
		Return(movement.ErrNotFound)

	svc := movement.NewService(repo)

	err := svc.Delete(context.Background(), ownerID, id)
	assert.ErrorIs(t, err, movement.ErrNotFound)
}
