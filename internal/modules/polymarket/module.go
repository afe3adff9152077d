package polymarket

import (
	"go.uber.org/fx"

	"lp_bot/internal/exchange"
	"lp_bot/internal/modules/config"
	"lp_bot/internal/positions"
	"lp_bot/internal/settings"
)

func Module() fx.Option {
	return fx.Module("polymarket",
		fx.Provide(
			func(cfg *config.Config) *exchange.Gamma {
				return exchange.NewGamma(cfg.API.GammaBase)
			},
			func(cfg *config.Config) *exchange.Clob {
				return exchange.NewClob(cfg.API.ClobBase)
			},
			func(cfg *config.Config) *exchange.Data {
				return exchange.NewData(cfg.API.DataBase)
			},
			func(cfg *config.Config) *settings.Store {
				return settings.NewStore(cfg.SettingsPath)
			},
			func(cfg *config.Config, st *settings.Store) (*positions.Book, error) {
				book := positions.NewBook(
					positions.NewStore(cfg.PositionsPath),
					positions.AddSemantics(st.Get().AddSemantics),
				)
				if err := book.Load(); err != nil {
					return nil, err
				}
				return book, nil
			},
		),
	)
}
