package api

import (
	"context"

	"connectrpc.com/connect"
)

// WithAuthToken returns a client option that attaches the given bearer
// token to every outgoing request.
func WithAuthToken(token string) connect.ClientOption {
	interceptor := connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	})
	return connect.WithInterceptors(interceptor)
}
