package verification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/food-delivery/application/verification"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	redismocks "github.com/muhammadheryan/food-delivery/mocks/repository/redis"
	txmocks "github.com/muhammadheryan/food-delivery/mocks/repository/tx"
	verificationmocks "github.com/muhammadheryan/food-delivery/mocks/repository/verification"
	marketplacemocks "github.com/muhammadheryan/food-delivery/mocks/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/model"
	verificationrepo "github.com/muhammadheryan/food-delivery/repository/verification"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fields struct {
	adminAPI         *marketplacemocks.AdminAPI
	txRepo           *txmocks.TxRepository
	verificationRepo *verificationmocks.VerificationRepository
	redisRepo        *redismocks.Repository
}

func newFields(t *testing.T) fields {
	return fields{
		adminAPI:         marketplacemocks.NewAdminAPI(t),
		txRepo:           txmocks.NewTxRepository(t),
		verificationRepo: verificationmocks.NewVerificationRepository(t),
		redisRepo:        redismocks.NewRepository(t),
	}
}

func (f fields) app() verification.VerificationApp {
	cfg := &config.Config{Cache: config.CacheConfig{TTL: time.Minute}}
	return verification.NewVerificationApp(cfg, f.adminAPI, f.txRepo, f.verificationRepo, f.redisRepo, nil)
}

func adminCtx() context.Context {
	return utilsContext.WithSession(context.Background(), &model.Session{ID: "s1", UserID: "a1", Role: constant.RoleAdmin})
}

func TestVerificationApp_DecideRestaurant(t *testing.T) {
	tx := &sqlx.Tx{}
	restaurantsKey := constant.SharedCacheKey(constant.ResourceUnverifiedRestaurants)

	tests := []struct {
		name     string
		decision model.Decision
		mockCall func(f fields)
		want     constant.VerificationStatus
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "approve a pending restaurant",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved, ExpectedStatus: constant.VerificationPending},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").Return(nil, nil).Once()
				f.adminAPI.On("ListUnverifiedRestaurants", mock.Anything).Return([]model.VerificationRequest{{ID: "r1"}}, nil).Once()
				f.verificationRepo.On("InsertDecisionTx", mock.Anything, tx, mock.MatchedBy(func(e *model.DecisionEntity) bool {
					return e.TargetID == "r1" && e.Status == constant.VerificationApproved && e.AdminID == "a1"
				})).Return(nil).Once()
				f.adminAPI.On("VerifyRestaurant", mock.Anything, model.VerifyPayload{ID: "r1", Status: constant.VerificationApproved}).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.redisRepo.On("GetJSON", mock.Anything, restaurantsKey, mock.Anything).Return(false, nil).Once()
			},
			want: constant.VerificationApproved,
		},
		{
			name:     "reject with a reason updates the ledger row",
			decision: model.Decision{ID: "r1", Status: constant.VerificationRejected, Reason: "  expired permit  "},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").
					Return(&model.DecisionEntity{ID: 7, TargetID: "r1", Status: constant.VerificationApproved, Version: 2}, nil).Once()
				f.verificationRepo.On("UpdateDecisionTx", mock.Anything, tx, mock.MatchedBy(func(e *model.DecisionEntity) bool {
					return e.ID == 7 && e.Status == constant.VerificationRejected && e.Reason == "expired permit"
				})).Return(nil).Once()
				f.adminAPI.On("VerifyRestaurant", mock.Anything, model.VerifyPayload{ID: "r1", Status: constant.VerificationRejected, Reason: "expired permit"}).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.redisRepo.On("GetJSON", mock.Anything, restaurantsKey, mock.Anything).
					Run(func(args mock.Arguments) {
						*args.Get(2).(*[]model.VerificationRequest) = []model.VerificationRequest{
							{ID: "r1", Name: "Tasty", Status: constant.VerificationApproved},
							{ID: "r2", Name: "Other", Status: constant.VerificationPending},
						}
					}).Return(true, nil).Once()
				f.redisRepo.On("SetJSON", mock.Anything, restaurantsKey, mock.MatchedBy(func(list []model.VerificationRequest) bool {
					return len(list) == 2 && list[0].Status == constant.VerificationRejected && list[1].Status == constant.VerificationPending
				}), time.Minute).Return(nil).Once()
			},
			want: constant.VerificationRejected,
		},
		{
			name:     "short rejection reason never opens a transaction",
			decision: model.Decision{ID: "r1", Status: constant.VerificationRejected, Reason: "no"},
			wantErr:  true,
			errCode:  constant.ErrInvalidReason,
		},
		{
			name:     "unknown status",
			decision: model.Decision{ID: "r1", Status: "maybe"},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name:     "same decision twice",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").
					Return(&model.DecisionEntity{ID: 7, Status: constant.VerificationApproved, Version: 1}, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrAlreadyDecided,
		},
		{
			name:     "another admin decided first",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved, ExpectedStatus: constant.VerificationPending},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").
					Return(&model.DecisionEntity{ID: 7, Status: constant.VerificationRejected, Version: 1}, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrDecisionConflict,
		},
		{
			name:     "stale version on write",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").
					Return(&model.DecisionEntity{ID: 7, Status: constant.VerificationPending, Version: 1}, nil).Once()
				f.verificationRepo.On("UpdateDecisionTx", mock.Anything, tx, mock.Anything).Return(verificationrepo.ErrStaleVersion).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrDecisionConflict,
		},
		{
			name:     "decided outside this service and not yet in the ledger",
			decision: model.Decision{ID: "r1", Status: constant.VerificationRejected, Reason: "license revoked", ExpectedStatus: constant.VerificationApproved},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").Return(nil, nil).Once()
				f.adminAPI.On("ListUnverifiedRestaurants", mock.Anything).
					Return([]model.VerificationRequest{{ID: "r1", Status: constant.VerificationApproved}}, nil).Once()
				f.verificationRepo.On("InsertDecisionTx", mock.Anything, tx, mock.MatchedBy(func(e *model.DecisionEntity) bool {
					return e.Status == constant.VerificationRejected
				})).Return(nil).Once()
				f.adminAPI.On("VerifyRestaurant", mock.Anything, model.VerifyPayload{ID: "r1", Status: constant.VerificationRejected, Reason: "license revoked"}).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.redisRepo.On("GetJSON", mock.Anything, restaurantsKey, mock.Anything).Return(false, nil).Once()
			},
			want: constant.VerificationRejected,
		},
		{
			name:     "marketplace already approved it and the ledger has no row",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").Return(nil, nil).Once()
				f.adminAPI.On("ListUnverifiedRestaurants", mock.Anything).
					Return([]model.VerificationRequest{{ID: "r1", Status: constant.VerificationApproved}}, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrAlreadyDecided,
		},
		{
			name:     "upstream status cannot be read",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").Return(nil, nil).Once()
				f.adminAPI.On("ListUnverifiedRestaurants", mock.Anything).Return(nil, errors.New("connection reset")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUpstream,
		},
		{
			name:     "another admin inserted the first decision concurrently",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved, ExpectedStatus: constant.VerificationPending},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").Return(nil, nil).Once()
				f.adminAPI.On("ListUnverifiedRestaurants", mock.Anything).Return([]model.VerificationRequest{{ID: "r1"}}, nil).Once()
				f.verificationRepo.On("InsertDecisionTx", mock.Anything, tx, mock.Anything).Return(verificationrepo.ErrStaleVersion).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrDecisionConflict,
		},
		{
			name:     "marketplace refuses so the ledger rolls back",
			decision: model.Decision{ID: "r1", Status: constant.VerificationApproved},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetRestaurant, "r1").Return(nil, nil).Once()
				f.adminAPI.On("ListUnverifiedRestaurants", mock.Anything).Return([]model.VerificationRequest{}, nil).Once()
				f.verificationRepo.On("InsertDecisionTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.adminAPI.On("VerifyRestaurant", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().DecideRestaurant(adminCtx(), tt.decision)
			if tt.wantErr {
				var ce cerr.CustomError
				require.True(t, errors.As(err, &ce), "error type = %T", err)
				require.Equal(t, constant.ErrorTypeCode[tt.errCode], ce.ErrorCode())
				f.txRepo.AssertNotCalled(t, "CommitTx", mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, verification.Actions(tt.want), got.Actions)
		})
	}
}

func TestVerificationApp_DecideDriver_RejectedUpstream(t *testing.T) {
	tx := &sqlx.Tx{}
	f := newFields(t)
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.verificationRepo.On("GetDecisionTx", mock.Anything, tx, constant.TargetDriver, "d1").Return(nil, nil).Once()
	f.adminAPI.On("ListDrivers", mock.Anything).
		Return([]model.VerificationRequest{{ID: "d1", Status: constant.VerificationRejected}}, nil).Once()
	f.verificationRepo.On("InsertDecisionTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
	f.adminAPI.On("VerifyDriver", mock.Anything, model.VerifyPayload{ID: "d1", Status: constant.VerificationApproved}).Return(nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()
	f.redisRepo.On("GetJSON", mock.Anything, constant.SharedCacheKey(constant.ResourceDeliveryPartners), mock.Anything).Return(false, nil).Once()

	got, err := f.app().DecideDriver(adminCtx(), model.Decision{ID: "d1", Status: constant.VerificationApproved, ExpectedStatus: constant.VerificationRejected})
	require.NoError(t, err)
	assert.Equal(t, constant.VerificationApproved, got.Status)
	assert.True(t, got.Actions.Reject)
	assert.False(t, got.Actions.Accept)
}

func TestVerificationApp_ListDrivers_DefaultsToPending(t *testing.T) {
	f := newFields(t)
	key := constant.SharedCacheKey(constant.ResourceDeliveryPartners)
	f.redisRepo.On("GetJSON", mock.Anything, key, mock.Anything).Return(false, nil).Once()
	f.adminAPI.On("ListDrivers", mock.Anything).Return([]model.VerificationRequest{{ID: "d1"}, {ID: "d2", Status: constant.VerificationApproved}}, nil).Once()
	f.redisRepo.On("SetJSON", mock.Anything, key, mock.Anything, time.Minute).Return(nil).Once()

	got, err := f.app().ListDrivers(adminCtx())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, constant.VerificationPending, got[0].Status)
	assert.True(t, got[0].Actions.Accept)
	assert.True(t, got[0].Actions.Reject)
	assert.False(t, got[1].Actions.Accept)
}

func TestVerificationApp_History(t *testing.T) {
	f := newFields(t)
	f.verificationRepo.On("ListDecisions", mock.Anything, constant.TargetDriver).
		Return([]model.DecisionEntity{{ID: 2, TargetID: "d1", Status: constant.VerificationRejected}}, nil).Once()

	got, err := f.app().History(adminCtx(), constant.TargetDriver)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].TargetID)

	_, err = f.app().History(adminCtx(), "customer")
	assert.True(t, cerr.Is(err, constant.ErrInvalidRequest))
}
