package http

import "context"

// requestInfo is resolved once per request by the request id middleware.
type requestInfo struct {
	id       string
	clientIP string
}

type requestInfoKey struct{}

func withRequestInfo(ctx context.Context, info requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

func requestInfoFrom(ctx context.Context) (requestInfo, bool) {
	if ctx == nil {
		return requestInfo{}, false
	}
	info, ok := ctx.Value(requestInfoKey{}).(requestInfo)
	return info, ok
}

// RequestIDFromContext returns the id sent back in X-Request-ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	info, _ := requestInfoFrom(ctx)
	return info.id
}

// ClientIPFromContext returns the address rate limiting and access logs key on.
func ClientIPFromContext(ctx context.Context) string {
	info, _ := requestInfoFrom(ctx)
	return info.clientIP
}
