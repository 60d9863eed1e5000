package bot

import (
	"context"
	"log"
	"time"
)

const (
	pollTimeoutSeconds = 50
	pollErrorBackoff   = 3 * time.Second
)

// Run drives the long-poll loop until the context is canceled. Each update
// is handled on its own goroutine so one slow chat cannot stall the rest.
func (bot *Bot) Run(ctx context.Context) {
	var offset int64

	for {
		if ctx.Err() != nil {
			return
		}

		updates, err := bot.client.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("telegram: getUpdates failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(pollErrorBackoff):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			update := update
			go func() {
				handleCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
				defer cancel()
				bot.HandleUpdate(handleCtx, update)
			}()
		}
	}
}
