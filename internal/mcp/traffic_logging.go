package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxLoggedPayload caps each logged payload; board views get large.
const maxLoggedPayload = 2048

// trafficLoggingMiddleware logs each MCP message at debug level: one record
// when it arrives and, for requests, one when it completes. Tool calls are
// tagged with the tool name and the lead they target.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			params := safeParams(req)
			log := logger.With(
				"direction", direction,
				"method", method,
				"session_id", safeSessionID(req),
				"operator", getOperator(ctx),
			)
			if call, ok := params.(*sdkmcp.CallToolParamsRaw); ok && call != nil {
				log = log.With("tool", call.Name)
				if id := leadID(call.Arguments); id != "" {
					log = log.With("lead_id", id)
				}
			}
			log.Debug("mcp traffic", "stage", "request", "params", formatPayload(params))

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := []any{"stage", "response", "elapsed", time.Since(start), "result", formatPayload(result)}
			if tool, ok := result.(*sdkmcp.CallToolResult); ok && tool != nil && tool.IsError {
				attrs = append(attrs, "tool_error", true)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			log.Debug("mcp traffic", attrs...)
			return result, err
		}
	}
}

// leadID pulls the "id" argument of a tool call without decoding the rest.
func leadID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var args struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return ""
	}
	return args.ID
}

// safeSessionID and safeParams guard against requests whose session or
// params are typed nils.
func safeSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

func safeParams(req sdkmcp.Request) (params sdkmcp.Params) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
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
	if len(data) > maxLoggedPayload {
		return fmt.Sprintf("%s... (%d bytes)", data[:maxLoggedPayload], len(data))
	}
	return string(data)
}
