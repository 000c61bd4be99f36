package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := []any{
				"direction", direction,
				"method", method,
				"session_id", safeSessionID(req),
				"view_id", getSessionID(ctx),
			}
			logger.Debug("mcp request", append(attrs, "params", formatPayload(safeParams(req)))...)

			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			attrs = append(attrs, "result", truncate(formatPayload(result), maxLoggedPayload))
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp response", attrs...)

			return result, err
		}
	}
}

// maxLoggedPayload caps response bodies in the log; a catalog page can be large.
const maxLoggedPayload = 2048

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}

func safeSessionID(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	ss := req.GetSession()
	if ss == nil {
		return ""
	}
	return ss.ID()
}

func safeParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
