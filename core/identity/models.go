// Package identity holds federated-identity linkage records: verified email
// addresses and external provider accounts associated with local users.
package identity

import (
	"context"

	"github.com/collabrate/collabrate/core"
)

type EmailVerification struct {
	ID       int    `json:"id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Primary  bool   `json:"primary"`
}

type SocialAccount struct {
	ID       int               `json:"id"`
	UserID   string            `json:"user_id"`
	Provider string            `json:"provider"`
	UID      string            `json:"uid"`
	Extra    map[string]string `json:"extra_data"`
}

type Repository interface {
	// BulkCreateEmailVerifications inserts records ignoring duplicate-key
	// conflicts, so re-running an insert batch is idempotent.
	BulkCreateEmailVerifications(ctx context.Context, recs []EmailVerification, exec ...core.DBExecutor) error
	BulkCreateSocialAccounts(ctx context.Context, recs []SocialAccount, exec ...core.DBExecutor) error
	DeleteAllEmailVerifications(ctx context.Context, exec ...core.DBExecutor) (int64, error)
	DeleteAllSocialAccounts(ctx context.Context, exec ...core.DBExecutor) (int64, error)
}
