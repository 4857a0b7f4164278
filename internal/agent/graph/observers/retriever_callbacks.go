package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/retriever"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// newRetrieverHandler logs document index lookups for the documentation branch.
func newRetrieverHandler() *callbackHelper.RetrieverCallbackHandler {
	return &callbackHelper.RetrieverCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *retriever.CallbackInput) context.Context {
			evt := logx.Debug().
				Str("component", info.Type).
				Str("node", info.Name)
			if input != nil {
				evt = evt.Str("query", input.Query).Int("top_k", input.TopK)
			}
			evt.Msg("Retrieval start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *retriever.CallbackOutput) context.Context {
			evt := logx.Debug().
				Str("component", info.Type).
				Str("node", info.Name)
			if output != nil {
				evt = evt.Int("documents", len(output.Docs))
			}
			evt.Msg("Retrieval end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().
				Str("component", info.Type).
				Str("node", info.Name).
				Err(err).
				Msg("Retrieval error")
			return ctx
		},
	}
}
