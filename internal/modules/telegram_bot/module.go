package telegram

import (
	"context"

	"go.uber.org/fx"

	"lp_bot/internal/modules/telegram_bot/service"
	"lp_bot/internal/notify"
	"lp_bot/internal/runner"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			service.NewTelegram,
		),

		// Adapter: *service.Telegram -> notify.Notifier
		fx.Provide(
			func(t *service.Telegram) notify.Notifier {
				return t
			},
		),

		// Start the update loop and the position monitor.
		fx.Invoke(
			func(lc fx.Lifecycle, ctx context.Context, t *service.Telegram, m *runner.Manager, n notify.Notifier) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go func() {
							_ = t.Start(ctx)
						}()
						return m.Run(ctx, n)
					},
					OnStop: func(context.Context) error {
						_ = m.Stop()
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
