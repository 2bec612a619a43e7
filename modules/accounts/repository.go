package accounts

import (
	"errors"

	domain "github.com/example/agent-tasks/domain/account"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when an account is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when an account with the same user_id or
	// email already exists.
	ErrUserExists = errors.New("user already exists")
)

// AccountRepository handles account persistence using GORM.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(acct *domain.Account) error {
	result := r.db.Create(acct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return result.Error
	}
	return nil
}

// FindByEmail finds an account by email.
func (r *AccountRepository) FindByEmail(email string) (*domain.Account, error) {
	var acct domain.Account
	result := r.db.First(&acct, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &acct, nil
}

// FindByUserID finds an account by its user_id.
func (r *AccountRepository) FindByUserID(userID string) (*domain.Account, error) {
	var acct domain.Account
	result := r.db.First(&acct, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &acct, nil
}

// FindAll returns every account ordered by creation time.
func (r *AccountRepository) FindAll() ([]domain.Account, error) {
	var accts []domain.Account
	result := r.db.Order("created_at ASC").Find(&accts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accts, nil
}

// FindByRole returns every account with the given role ordered by creation
// time. Creation order keeps the agent list stable across assignment runs.
func (r *AccountRepository) FindByRole(role string) ([]domain.Account, error) {
	var accts []domain.Account
	result := r.db.Where("role = ?", role).Order("created_at ASC").Find(&accts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accts, nil
}

// Exists checks whether an account with the given user_id or email exists.
func (r *AccountRepository) Exists(userID, email string) (bool, error) {
	var count int64
	result := r.db.Model(&domain.Account{}).
		Where("user_id = ? OR email = ?", userID, email).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpdateByEmail applies the given column updates to the account matched by
// email and returns the updated record.
func (r *AccountRepository) UpdateByEmail(email string, updates map[string]any) (*domain.Account, error) {
	acct, err := r.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		result := r.db.Model(acct).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
	}
	return r.FindByUserID(acct.UserID)
}

// DeleteByEmail removes the account matched by email and returns it.
func (r *AccountRepository) DeleteByEmail(email string) (*domain.Account, error) {
	acct, err := r.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	result := r.db.Delete(&domain.Account{}, "email = ?", email)
	if result.Error != nil {
		return nil, result.Error
	}
	return acct, nil
}
