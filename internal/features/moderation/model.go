package moderation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account status values. Transitions are one-way: active -> suspended.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
)

// Report is one ledger entry: reporter X reported post Y. Immutable
// once written, retained for audit. The unique (postId, reporterId)
// index is what makes report submission idempotent.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID     string             `bson:"postId" json:"postId"`
	ReporterID string             `bson:"reporterId" json:"reporterId"`
	Reason     string             `bson:"reason" json:"reason"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is the reported content. Created elsewhere; this engine only
// moves reportCount up and flips isBlocked once.
type Post struct {
	ID          string     `bson:"_id" json:"id"`
	AuthorID    string     `bson:"authorId" json:"authorId"` // owning profile
	ReportCount int64      `bson:"reportCount" json:"reportCount"`
	IsBlocked   bool       `bson:"isBlocked" json:"isBlocked"`
	BlockedAt   *time.Time `bson:"blockedAt,omitempty" json:"blockedAt,omitempty"`
}

// Profile owns posts and belongs to an account. blockedPostCount
// counts posts that transitioned into blocked under this profile,
// not raw reports, and never decrements.
type Profile struct {
	ID               string `bson:"_id" json:"id"`
	OwnerID          string `bson:"ownerId" json:"ownerId"` // owning account
	BlockedPostCount int64  `bson:"blockedPostCount" json:"blockedPostCount"`
	IsBlocked        bool   `bson:"isBlocked" json:"isBlocked"`
}

// Account is the top of the ownership chain.
type Account struct {
	ID     string `bson:"_id" json:"id"`
	Status string `bson:"status" json:"status"`
}

// SubmitReportRequest is the report submission body. All three fields
// are required; anything missing is rejected before the engine runs.
type SubmitReportRequest struct {
	PostID     string `json:"postId" binding:"required"`
	ReporterID string `json:"reporterId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

// CascadeResult reports how far a single submission escalated.
type CascadeResult struct {
	ReportAccepted      bool `json:"reportAccepted"`
	PostBlockedNow      bool `json:"postBlockedNow"`
	ProfileBlockedNow   bool `json:"profileBlockedNow"`
	AccountSuspendedNow bool `json:"accountSuspendedNow"`
}
