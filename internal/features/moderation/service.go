package moderation

import (
	"context"
	"time"

	apperrors "github.com/gvone/gvone-api/pkg/errors"
)

// Store is what the escalation engine needs from persistence. The
// Mongo Repository implements it; tests substitute an in-memory one.
type Store interface {
	HasReport(ctx context.Context, postID, reporterID string) (bool, error)
	InsertReport(ctx context.Context, report *Report) error
	ListReports(ctx context.Context, postID string, offset, limit int) ([]Report, int64, error)

	GetPost(ctx context.Context, id string) (*Post, error)
	IncrementPostReports(ctx context.Context, id string) (*Post, error)
	MarkPostBlocked(ctx context.Context, id string, at time.Time) (bool, error)

	IncrementProfileBlockedPosts(ctx context.Context, id string) (*Profile, error)
	MarkProfileBlocked(ctx context.Context, id string) (bool, error)
	CountBlockedProfiles(ctx context.Context, ownerID string) (int64, error)
	ListProfilesByOwner(ctx context.Context, ownerID string) ([]Profile, error)

	GetAccount(ctx context.Context, id string) (*Account, error)
	MarkAccountSuspended(ctx context.Context, id string) (bool, error)
}

// Service runs the escalation cascade: record the report, bump the
// post counter, and walk upward one level at a time. Each level only
// advances when the previous one crossed its threshold for the first
// time, so once something is blocked, later reports stop early.
type Service struct {
	store     Store
	policy    *Policy
	suspender *Suspender
}

func NewService(store Store, policy *Policy, suspender *Suspender) *Service {
	return &Service{
		store:     store,
		policy:    policy,
		suspender: suspender,
	}
}

// SubmitReport is the single entry point. Rejections come back as
// ErrDuplicateReport / ErrSelfReport with zero writes performed; any
// store failure aborts the remaining levels. Every step is idempotent,
// so re-invoking with the same inputs after a crash is safe.
func (s *Service) SubmitReport(ctx context.Context, req *SubmitReportRequest) (*CascadeResult, error) {
	result := &CascadeResult{}

	post, err := s.register(ctx, req)
	if err != nil {
		return result, err
	}
	result.ReportAccepted = true

	// Level 1: post
	crossed, err := s.escalatePost(ctx, post.ID)
	if err != nil || !crossed {
		return result, err
	}
	result.PostBlockedNow = true

	// Level 2: owning profile
	crossed, ownerID, err := s.escalateProfile(ctx, post.AuthorID)
	if err != nil || !crossed {
		return result, err
	}
	result.ProfileBlockedNow = true

	// Level 3: owning account
	crossed, err = s.escalateAccount(ctx, ownerID)
	if err != nil || !crossed {
		return result, err
	}
	result.AccountSuspendedNow = true

	return result, nil
}

// register runs the ledger checks and appends the report. Returns the
// post snapshot fetched for the ownership check so the caller does not
// read it twice.
func (s *Service) register(ctx context.Context, req *SubmitReportRequest) (*Post, error) {
	exists, err := s.store.HasReport(ctx, req.PostID, req.ReporterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReport
	}

	post, err := s.store.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == req.ReporterID {
		return nil, apperrors.ErrSelfReport
	}

	report := &Report{
		PostID:     req.PostID,
		ReporterID: req.ReporterID,
		Reason:     req.Reason,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.InsertReport(ctx, report); err != nil {
		// The unique index may still catch a concurrent duplicate here
		return nil, err
	}

	return post, nil
}

// escalatePost: increment, evaluate, compare-and-set. The increment
// returns the post-increment document, so counter and flag come from
// the same atomic step; the CAS decides who actually cascades.
func (s *Service) escalatePost(ctx context.Context, postID string) (bool, error) {
	post, err := s.store.IncrementPostReports(ctx, postID)
	if err != nil {
		return false, err
	}

	if !s.policy.Evaluate(LevelPost, post.ReportCount, post.IsBlocked) {
		return false, nil
	}

	return s.store.MarkPostBlocked(ctx, postID, time.Now().UTC())
}

// escalateProfile: same step shape one level up. Also returns the
// profile's owning account for the next level.
func (s *Service) escalateProfile(ctx context.Context, profileID string) (bool, string, error) {
	profile, err := s.store.IncrementProfileBlockedPosts(ctx, profileID)
	if err != nil {
		return false, "", err
	}

	if !s.policy.Evaluate(LevelProfile, profile.BlockedPostCount, profile.IsBlocked) {
		return false, profile.OwnerID, nil
	}

	won, err := s.store.MarkProfileBlocked(ctx, profileID)
	return won, profile.OwnerID, err
}

// escalateAccount: the account level has no stored counter - the
// "counter" is a live count of blocked sibling profiles.
func (s *Service) escalateAccount(ctx context.Context, accountID string) (bool, error) {
	blocked, err := s.store.CountBlockedProfiles(ctx, accountID)
	if err != nil {
		return false, err
	}

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return false, err
	}

	if !s.policy.Evaluate(LevelAccount, blocked, account.Status == AccountSuspended) {
		return false, nil
	}

	return s.suspender.Suspend(ctx, accountID)
}

// ListReports exposes the ledger for auditing
func (s *Service) ListReports(ctx context.Context, postID string, offset, limit int) ([]Report, int64, error) {
	return s.store.ListReports(ctx, postID, offset, limit)
}
