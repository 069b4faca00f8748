package user

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	redisrepo "github.com/muhammadheryan/food-delivery/repository/redis"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// UserApp owns the session: {user, token, login(), logout()}.
type UserApp interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context, tokenString string) (*model.Session, error)
	// Invalidate drops the caller's session; run when the marketplace rejects its token.
	Invalidate(ctx context.Context)
}

type UserAppImpl struct {
	config    *config.Config
	authAPI   marketplace.AuthAPI
	redisRepo redisrepo.Repository
}

func NewUserApp(config *config.Config, authAPI marketplace.AuthAPI, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		authAPI:   authAPI,
		redisRepo: redisRepo,
	}
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	res, err := s.authAPI.Login(ctx, req.Email, req.Password)
	if err != nil {
		if marketplace.StatusCode(err) == 0 {
			logger.Error("[Login] err authAPI.Login", zap.String("error", err.Error()))
		}
		return nil, marketplace.MapError(err, map[int]constant.ErrorType{400: constant.ErrUnauthorize, 404: constant.ErrUnauthorize})
	}
	if res.Token == "" || res.User.ID == "" {
		logger.Error("[Login] marketplace login without token or user")
		return nil, errors.SetCustomError(constant.ErrUpstream)
	}

	role := res.User.Role
	if !role.Valid() {
		role = constant.RoleCustomer
	}

	token, jti, err := s.generateJWT(res.User.ID)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	session := &model.Session{
		ID:     jti,
		UserID: res.User.ID,
		Name:   res.User.Name,
		Email:  res.User.Email,
		Role:   role,
		Token:  res.Token,
	}
	if err := s.redisRepo.SetSession(ctx, session, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Name:  session.Name,
		Email: session.Email,
		Role:  session.Role,
		Token: token,
	}, nil
}

func (s *UserAppImpl) Logout(ctx context.Context) error {
	session, ok := utilsContext.GetSession(ctx)
	if !ok {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.redisRepo.DeleteSession(ctx, session.ID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) Invalidate(ctx context.Context) {
	session, ok := utilsContext.GetSession(ctx)
	if !ok {
		return
	}
	if err := s.redisRepo.DeleteSession(ctx, session.ID); err != nil {
		logger.Warn("[Invalidate] err DeleteSession", zap.String("error", err.Error()))
	}
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (*model.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("token missing jti")
	}

	session, err := s.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired session: %w", err)
	}

	if session.UserID != claims.Subject {
		return nil, fmt.Errorf("token does not match user session")
	}

	return session, nil
}

// generateJWT creates the BFF token; its jti keys the redis session
func (s *UserAppImpl) generateJWT(userID string) (string, string, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return "", "", err
	}
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}
