package moderation

import "github.com/gvone/gvone-api/internal/config"

// Level identifies one step of the escalation walk.
type Level int

const (
	LevelPost Level = iota
	LevelProfile
	LevelAccount
)

func (l Level) String() string {
	switch l {
	case LevelPost:
		return "post"
	case LevelProfile:
		return "profile"
	case LevelAccount:
		return "account"
	default:
		return "unknown"
	}
}

// Policy decides whether a counter value crosses a level's threshold
// for the first time. It is pure: no storage access, no side effects,
// and it never signals an un-block.
type Policy struct {
	thresholds config.Thresholds
}

func NewPolicy(thresholds config.Thresholds) *Policy {
	return &Policy{thresholds: thresholds}
}

// Evaluate returns true only on a first-time crossing: the counter is
// at or past the level's threshold and the entity is not already
// blocked. Subsequent counts past the threshold return false.
func (p *Policy) Evaluate(level Level, count int64, alreadyBlocked bool) bool {
	if alreadyBlocked {
		return false
	}
	return count >= p.Threshold(level)
}

// Threshold returns the configured cut-off for a level.
func (p *Policy) Threshold(level Level) int64 {
	switch level {
	case LevelPost:
		return p.thresholds.Post
	case LevelProfile:
		return p.thresholds.Profile
	case LevelAccount:
		return p.thresholds.Account
	default:
		return 0
	}
}
