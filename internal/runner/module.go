package runner

import (
	"go.uber.org/fx"

	"lp_bot/internal/exchange"
	"lp_bot/internal/scanner"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewSnapshotter,
			NewManager,
			func(g *exchange.Gamma) *scanner.Scanner {
				return scanner.New(g)
			},
		),
	)
}
