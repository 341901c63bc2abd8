package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Dispatch delivers the intent best-effort. A nil gateway is a no-op. Delivery
// failures (error or panic) are logged and swallowed so a gateway outage can
// never fail or roll back the operation that produced the intent.
func Dispatch(ctx context.Context, gw Gateway, intent Intent) {
	if gw == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("type", intent.Type).Msg("Notification gateway panicked")
		}
	}()
	if err := gw.Send(ctx, intent); err != nil {
		log.Warn().Err(err).
			Str("type", intent.Type).
			Str("user_id", intent.UserID.String()).
			Msg("Notification delivery failed")
	}
}
