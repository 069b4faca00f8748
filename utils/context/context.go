package context

import (
	"context"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, constant.SessionKey, session)
}

func GetSession(ctx context.Context) (*model.Session, bool) {
	v := ctx.Value(constant.SessionKey)
	if v == nil {
		return nil, false
	}
	s, ok := v.(*model.Session)
	return s, ok && s != nil
}

func GetUserID(ctx context.Context) (string, bool) {
	s, ok := GetSession(ctx)
	if !ok {
		return "", false
	}
	return s.UserID, s.UserID != ""
}

// GetToken returns the marketplace bearer token of the caller.
func GetToken(ctx context.Context) string {
	s, ok := GetSession(ctx)
	if !ok {
		return ""
	}
	return s.Token
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constant.RequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(constant.RequestIDKey).(string)
	return id
}

// CacheKey scopes resource to the caller's user.
func CacheKey(ctx context.Context, resource string) (string, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return "", false
	}
	return constant.UserCacheKey(userID, resource), true
}
