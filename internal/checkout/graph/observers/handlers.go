package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	errx "github.com/tillpoint/checkout/internal/core/error"
	logx "github.com/tillpoint/checkout/pkg/logger"
)

// NewNodeCallbacks logs the lifecycle of every checkout node. Attach it via
// compose.WithCallbacks(...) when invoking the graph.
func NewNodeCallbacks() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Str("type", info.Type).Msg("node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Msg("node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			name := ""
			if info != nil {
				name = info.Name
			}
			logx.Debug().Str("node", name).Str("kind", errx.KindOf(err).String()).Err(err).Msg("node failed")
			return ctx
		}).
		Build()
}
