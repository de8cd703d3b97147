package sqlxrepos

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/identity"
)

type identityRepository struct {
	exec core.DBExecutor
}

var _ identity.Repository = (*identityRepository)(nil) // interface compliance check

func NewIdentityRepository(exec core.DBExecutor) *identityRepository {
	return &identityRepository{exec: exec}
}

func (repo identityRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

func (repo identityRepository) BulkCreateEmailVerifications(
	ctx context.Context,
	recs []identity.EmailVerification,
	exec ...core.DBExecutor,
) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([]string, 0, len(recs))
	args := make([]interface{}, 0, len(recs)*4)
	for i, rec := range recs {
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, rec.UserID, rec.Email, rec.Verified, rec.Primary)
	}
	_, err := repo.getExec(exec).ExecContext(ctx,
		fmt.Sprintf(
			`INSERT INTO email_verification (user_id, email, verified, "primary") VALUES %s ON CONFLICT DO NOTHING`,
			strings.Join(values, ","),
		),
		args...,
	)
	return errors.Wrap(err, "bulk inserting email verifications")
}

func (repo identityRepository) BulkCreateSocialAccounts(
	ctx context.Context,
	recs []identity.SocialAccount,
	exec ...core.DBExecutor,
) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([]string, 0, len(recs))
	args := make([]interface{}, 0, len(recs)*4)
	for i, rec := range recs {
		extra, err := json.Marshal(rec.Extra)
		if err != nil {
			return errors.Wrap(err, "marshaling social account extra data")
		}
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, rec.UserID, rec.Provider, rec.UID, extra)
	}
	_, err := repo.getExec(exec).ExecContext(ctx,
		fmt.Sprintf(
			`INSERT INTO social_account (user_id, provider, uid, extra_data) VALUES %s ON CONFLICT DO NOTHING`,
			strings.Join(values, ","),
		),
		args...,
	)
	return errors.Wrap(err, "bulk inserting social accounts")
}

func (repo identityRepository) DeleteAllEmailVerifications(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM email_verification`)
	if err != nil {
		return 0, errors.Wrap(err, "deleting email verifications")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "deleting email verifications")
}

func (repo identityRepository) DeleteAllSocialAccounts(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM social_account`)
	if err != nil {
		return 0, errors.Wrap(err, "deleting social accounts")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "deleting social accounts")
}
