package moderation

import (
	"context"
	"log"
)

// AccountDisabler cuts off the suspended account in the auth backend.
// Optional; the Mongo status flip happens either way.
type AccountDisabler interface {
	DisableAccount(ctx context.Context, accountID string) error
}

// Suspender is the terminal cascade action: flip the account to
// suspended and force-block every profile it owns, including ones that
// never crossed the profile threshold on their own.
type Suspender struct {
	store    Store
	disabler AccountDisabler
}

func NewSuspender(store Store, disabler AccountDisabler) *Suspender {
	return &Suspender{
		store:    store,
		disabler: disabler,
	}
}

// Suspend returns true when this call performed the active->suspended
// transition, false when the account was already suspended. The
// profile sweep runs in both cases: a sweep interrupted halfway must
// finish on the next invocation, so it cannot be gated on the status
// transition.
func (s *Suspender) Suspend(ctx context.Context, accountID string) (bool, error) {
	newly, err := s.store.MarkAccountSuspended(ctx, accountID)
	if err != nil {
		return false, err
	}

	if s.disabler != nil {
		// Idempotent on the auth side, so retried invocations are fine
		if err := s.disabler.DisableAccount(ctx, accountID); err != nil {
			return newly, err
		}
	}

	if newly {
		log.Printf("Account %s suspended, sweeping remaining profiles", accountID)
	}

	profiles, err := s.store.ListProfilesByOwner(ctx, accountID)
	if err != nil {
		return newly, err
	}

	// Sequential on purpose: partial completion is resumable and the
	// per-profile flip is a no-op for already-blocked ones.
	for i := range profiles {
		if profiles[i].IsBlocked {
			continue
		}
		if _, err := s.store.MarkProfileBlocked(ctx, profiles[i].ID); err != nil {
			return newly, err
		}
	}

	return newly, nil
}
