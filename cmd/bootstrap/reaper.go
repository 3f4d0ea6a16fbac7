package bootstrap

import (
	"context"
	"log/slog"

	"cinema-booking/internal/pkg/config"
	"cinema-booking/internal/usecase/commands"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
)

var ReaperModule = fx.Module("reaper",
	fx.Invoke(StartBookingReaper),
)

// StartBookingReaper schedules the expiry sweep for abandoned pending
// bookings. The sweep itself is one transactional statement, so
// overlapping runs are harmless; gocron's default skips them anyway.
func StartBookingReaper(lc fx.Lifecycle, cfg config.Config, expiry commands.ExpiryCommands, logger *slog.Logger) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Booking.ReapInterval),
		gocron.NewTask(func() {
			count, sweepErr := expiry.ExpireStaleBookings(context.Background())
			if sweepErr != nil {
				logger.Error("booking expiry sweep failed", "error", sweepErr.Error())
				return
			}
			if count > 0 {
				logger.Info("booking expiry sweep finished", "expired", count)
			}
		}),
	)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			logger.Info("booking reaper started",
				"interval", cfg.Booking.ReapInterval.String(),
				"hold", cfg.Booking.HoldDuration.String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return scheduler.Shutdown()
		},
	})
	return nil
}
