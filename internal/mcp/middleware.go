package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const operatorKey contextKey = iota

// OperatorHeader names the person acting through an HTTP client.
const OperatorHeader = "X-Leadboard-Operator"

// getOperator extracts the acting person's name from context.
func getOperator(ctx context.Context) string {
	v, _ := ctx.Value(operatorKey).(string)
	return v
}

// operatorMiddleware extracts the operator from the X-Leadboard-Operator
// header (HTTP) or _meta.operator (stdio). It becomes the default author of
// notes written through the tools.
func operatorMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var operator string

			if extra := req.GetExtra(); extra != nil && extra.Header != nil {
				operator = extra.Header.Get(OperatorHeader)
			}

			// Some notifications carry nil params; GetMeta can panic on them.
			if operator == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if name, ok := meta["operator"].(string); ok {
								operator = name
							}
						}
					}()
				}
			}

			if operator = strings.TrimSpace(operator); operator != "" {
				ctx = context.WithValue(ctx, operatorKey, operator)
			}
			return next(ctx, method, req)
		}
	}
}
