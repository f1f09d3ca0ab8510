package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC.
// It logs the procedure name, the authenticated user if any, the
// duration, and the error code on failure.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", procedure,
				"user_id", GetUserID(ctx), // empty if unauthenticated
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					attrs = append(attrs, "code", connectErr.Code(), "error", connectErr.Message())
					slog.Warn("RPC error", attrs...)
				} else {
					attrs = append(attrs, "error", err)
					slog.Error("RPC error", attrs...)
				}
				return resp, err
			}

			slog.Info("RPC ok", attrs...)
			return resp, err
		}
	}
}
