package logger

import (
	"context"

	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is what one request contributes to every log line written for it.
type scope struct {
	requestID string
	userID    int64
	username  string
}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeFrom(ctx)
	s.requestID = requestID
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithUser tags later lines with the signed-in user. A zero id means anonymous.
func WithUser(ctx context.Context, id int64, username string) context.Context {
	s := scopeFrom(ctx)
	s.userID = id
	s.username = username
	return context.WithValue(ctx, scopeKey{}, s)
}

func RequestIDFrom(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// FromCtx returns the global logger with the request scope attached.
func FromCtx(ctx context.Context) *zap.Logger {
	s := scopeFrom(ctx)

	fields := make([]zap.Field, 0, 3)
	if s.requestID != "" {
		fields = append(fields, zap.String("request_id", s.requestID))
	}
	if s.userID != 0 {
		fields = append(fields, zap.Int64("user_id", s.userID), zap.String("username", s.username))
	}
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
