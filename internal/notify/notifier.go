package notify

import (
	"context"
	"fmt"
)

// Notifier is the outbound alert channel. The Telegram service is the
// real implementation; Stdout covers the one-shot scanner and tests.
type Notifier interface {
	Send(ctx context.Context, msg string) error
	Sendf(ctx context.Context, format string, args ...any) error
	SendHTML(ctx context.Context, html string) error
}

type Stdout struct{}

func (Stdout) Send(_ context.Context, msg string) error {
	fmt.Println(msg)
	return nil
}

func (s Stdout) Sendf(ctx context.Context, format string, args ...any) error {
	return s.Send(ctx, fmt.Sprintf(format, args...))
}

func (s Stdout) SendHTML(ctx context.Context, html string) error {
	return s.Send(ctx, html)
}
