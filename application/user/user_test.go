package user_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	appuser "github.com/muhammadheryan/food-delivery/application/user"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	redismocks "github.com/muhammadheryan/food-delivery/mocks/repository/redis"
	marketplacemocks "github.com/muhammadheryan/food-delivery/mocks/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func TestUserApp_Login(t *testing.T) {
	type fields struct {
		authAPI   *marketplacemocks.AuthAPI
		redisRepo *redismocks.Repository
	}
	type args struct {
		ctx context.Context
		req *model.LoginRequest
	}
	tests := []struct {
		name     string
		args     args
		mockCall func(f fields)
		wantRole constant.Role
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: restaurant owner",
			args: args{ctx: context.Background(), req: &model.LoginRequest{Email: "owner@example.com", Password: "secret"}},
			mockCall: func(f fields) {
				f.authAPI.On("Login", mock.Anything, "owner@example.com", "secret").Return(&model.MarketplaceLogin{
					Token: "mp-token",
					User:  model.MarketplaceUser{ID: "r1", Name: "Owner", Email: "owner@example.com", Role: constant.RoleRestaurant},
				}, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
					return s.UserID == "r1" && s.Token == "mp-token" && s.Role == constant.RoleRestaurant && s.ID != ""
				}), time.Hour).Return(nil).Once()
			},
			wantRole: constant.RoleRestaurant,
		},
		{
			name: "success: unknown role falls back to customer",
			args: args{ctx: context.Background(), req: &model.LoginRequest{Email: "a@example.com", Password: "secret"}},
			mockCall: func(f fields) {
				f.authAPI.On("Login", mock.Anything, "a@example.com", "secret").Return(&model.MarketplaceLogin{
					Token: "mp-token",
					User:  model.MarketplaceUser{ID: "u1", Role: "superuser"},
				}, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			wantRole: constant.RoleCustomer,
		},
		{
			name: "error: wrong credentials",
			args: args{ctx: context.Background(), req: &model.LoginRequest{Email: "a@example.com", Password: "bad"}},
			mockCall: func(f fields) {
				f.authAPI.On("Login", mock.Anything, "a@example.com", "bad").
					Return(nil, &marketplace.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid credentials"}).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
		{
			name: "error: marketplace answered without a token",
			args: args{ctx: context.Background(), req: &model.LoginRequest{Email: "a@example.com", Password: "secret"}},
			mockCall: func(f fields) {
				f.authAPI.On("Login", mock.Anything, "a@example.com", "secret").Return(&model.MarketplaceLogin{}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUpstream,
		},
		{
			name: "error: session store down",
			args: args{ctx: context.Background(), req: &model.LoginRequest{Email: "a@example.com", Password: "secret"}},
			mockCall: func(f fields) {
				f.authAPI.On("Login", mock.Anything, "a@example.com", "secret").Return(&model.MarketplaceLogin{
					Token: "mp-token",
					User:  model.MarketplaceUser{ID: "u1", Role: constant.RoleCustomer},
				}, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(errors.New("redis down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				authAPI:   marketplacemocks.NewAuthAPI(t),
				redisRepo: redismocks.NewRepository(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			s := appuser.NewUserApp(testConfig(), f.authAPI, f.redisRepo)

			got, err := s.Login(tt.args.ctx, tt.args.req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Token == "" || got.Token == "mp-token" {
				t.Fatalf("expected a BFF token, got %q", got.Token)
			}
			if got.Role != tt.wantRole {
				t.Fatalf("role = %s, want %s", got.Role, tt.wantRole)
			}
		})
	}
}

func TestUserApp_ValidateToken(t *testing.T) {
	authAPI := marketplacemocks.NewAuthAPI(t)
	redisRepo := redismocks.NewRepository(t)
	authAPI.On("Login", mock.Anything, "a@example.com", "secret").Return(&model.MarketplaceLogin{
		Token: "mp-token",
		User:  model.MarketplaceUser{ID: "u1", Role: constant.RoleCustomer},
	}, nil).Once()

	var stored *model.Session
	redisRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.Session) }).
		Return(nil).Once()

	s := appuser.NewUserApp(testConfig(), authAPI, redisRepo)
	res, err := s.Login(context.Background(), &model.LoginRequest{Email: "a@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	redisRepo.On("GetSession", mock.Anything, stored.ID).Return(stored, nil).Once()
	session, err := s.ValidateToken(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if session.Token != "mp-token" || session.UserID != "u1" {
		t.Fatalf("unexpected session %+v", session)
	}

	if _, err := s.ValidateToken(context.Background(), res.Token+"x"); err == nil {
		t.Fatalf("tampered token accepted")
	}

	other := appuser.NewUserApp(&config.Config{Auth: config.AuthConfig{JWTSecret: "other"}}, authAPI, redisRepo)
	if _, err := other.ValidateToken(context.Background(), res.Token); err == nil {
		t.Fatalf("token signed with another secret accepted")
	}
}

func TestUserApp_Logout(t *testing.T) {
	redisRepo := redismocks.NewRepository(t)
	redisRepo.On("DeleteSession", mock.Anything, "s1").Return(nil).Once()
	s := appuser.NewUserApp(testConfig(), marketplacemocks.NewAuthAPI(t), redisRepo)

	ctx := utilsContext.WithSession(context.Background(), &model.Session{ID: "s1", UserID: "u1"})
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := s.Logout(context.Background()); !cerr.Is(err, constant.ErrUnauthorize) {
		t.Fatalf("logout without session: %v", err)
	}
}
