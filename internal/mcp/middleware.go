package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const sessionIDKey contextKey = iota

// getSessionID extracts session ID from context.
func getSessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// withSessionID stores a session ID in context.
func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// sessionMiddleware extracts session ID from Mcp-Session-Id header (HTTP) or metadata (stdio).
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get("Mcp-Session-Id")
			}

			// Some notifications (like "initialized") carry nil params, and
			// GetMeta panics on a nil underlying value.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["session_id"].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID != "" {
				ctx = withSessionID(ctx, sessionID)
			}

			return next(ctx, method, req)
		}
	}
}
