package scaffold

import (
	"context"
	"log/slog"

	"github.com/JIGGAI/ClawKitchen/internal/openclaw"
)

// Service wraps scaffold invocations in the cron-installation config
// override. The override makes the CLI behave as if its interactive prompt
// had been answered; the prior value is restored on every exit path so the
// global configuration is never permanently changed.
//
// The configuration key is process-wide shared state in the external tool:
// two concurrent override-bearing scaffolds can interleave reads and writes
// arbitrarily. That race is accepted; the transaction protects against
// failure, not against concurrent callers.
type Service struct {
	inv      openclaw.Invoker
	recorder *Recorder
}

func NewService(inv openclaw.Invoker, recorder *Recorder) *Service {
	return &Service{inv: inv, recorder: recorder}
}

// Outcome reports one scaffold invocation: the argument vector that was
// executed and the CLI's normalized result.
type Outcome struct {
	Args   []string
	Result openclaw.Result
}

// Scaffold validates the request, applies the cron override when asked,
// runs the scaffold command, records team provenance on success, and
// restores the prior configuration value. Restoration failures are
// swallowed: the scaffold's own outcome is the reported one.
func (s *Service) Scaffold(ctx context.Context, req Request) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}

	args := BuildArgs(req)
	out := Outcome{Args: args}

	if req.CronInstallChoice == "yes" || req.CronInstallChoice == "no" {
		prev, err := openclaw.ConfigGet(ctx, s.inv, openclaw.PathCronInstallation)
		if err != nil {
			return out, err
		}
		if prev != "" {
			// Restore runs even when the scaffold step fails or the
			// request context is already canceled. An unset prior value
			// is not restored: unset and empty are different states.
			restoreCtx := context.WithoutCancel(ctx)
			defer func() {
				if err := openclaw.ConfigSet(restoreCtx, s.inv, openclaw.PathCronInstallation, prev); err != nil {
					slog.Warn("cron installation config not restored", "error", err)
				}
			}()
		}

		next := "off"
		if req.CronInstallChoice == "yes" {
			next = "on"
		}
		if err := openclaw.ConfigSet(ctx, s.inv, openclaw.PathCronInstallation, next); err != nil {
			return out, err
		}
	}

	out.Result = s.inv.Run(ctx, args...)

	if out.Result.OK && req.Kind == KindTeam {
		s.recorder.Record(ctx, req.TeamID, req.RecipeID)
	}

	return out, nil
}
