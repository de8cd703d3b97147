package inmemdb

import (
	"context"

	"github.com/collabrate/collabrate/core"
	"github.com/collabrate/collabrate/core/identity"
)

type identityRepository struct {
	db *DB
}

var _ identity.Repository = (*identityRepository)(nil) // interface compliance check

func NewIdentityRepository(db *DB) *identityRepository {
	return &identityRepository{db: db}
}

func (repo *identityRepository) BulkCreateEmailVerifications(ctx context.Context, recs []identity.EmailVerification, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, rec := range recs {
		if repo.emailExists(rec.UserID, rec.Email) {
			continue // duplicate key, skip like ON CONFLICT DO NOTHING
		}
		rec.ID = len(repo.db.emails) + 1
		repo.db.emails = append(repo.db.emails, rec)
	}
	return nil
}

func (repo *identityRepository) BulkCreateSocialAccounts(ctx context.Context, recs []identity.SocialAccount, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, rec := range recs {
		if repo.socialExists(rec.Provider, rec.UID) {
			continue
		}
		rec.ID = len(repo.db.socials) + 1
		repo.db.socials = append(repo.db.socials, rec)
	}
	return nil
}

func (repo *identityRepository) DeleteAllEmailVerifications(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n := int64(len(repo.db.emails))
	repo.db.emails = nil
	return n, nil
}

func (repo *identityRepository) DeleteAllSocialAccounts(ctx context.Context, exec ...core.DBExecutor) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n := int64(len(repo.db.socials))
	repo.db.socials = nil
	return n, nil
}

// SocialAccounts returns a snapshot of the stored rows for test assertions.
func (repo *identityRepository) SocialAccounts() []identity.SocialAccount {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	recs := make([]identity.SocialAccount, len(repo.db.socials))
	copy(recs, repo.db.socials)
	return recs
}

func (repo *identityRepository) emailExists(userID, email string) bool {
	for _, rec := range repo.db.emails {
		if rec.UserID == userID && rec.Email == email {
			return true
		}
	}
	return false
}

func (repo *identityRepository) socialExists(provider, uid string) bool {
	for _, rec := range repo.db.socials {
		if rec.Provider == provider && rec.UID == uid {
			return true
		}
	}
	return false
}
