package httpx

import "context"

type ctxKey string

const (
	CtxKeyAccountID ctxKey = "account_id"
	CtxKeyUsername  ctxKey = "username"
	CtxKeyClaims    ctxKey = "claims" // full jwtx.Claims if a handler needs them
)

// AccountIDFromCtx returns the authenticated account ID or "".
func AccountIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}

// UsernameFromCtx returns the authenticated username or "".
func UsernameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}
