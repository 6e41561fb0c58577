package db

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	IsEmailExist(ctx context.Context, email string) (bool, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUserByID(ctx context.Context, id uuid.UUID) error
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
}

// TokenBlacklist stores revoked access tokens until they expire.
type TokenBlacklist interface {
	AddToBlackList(ctx context.Context, token string, ttl time.Duration) error
	IsTokenInBlacklist(ctx context.Context, token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	if err := a.DB.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return errors.Wrap(err, "creating user")
	}
	return nil
}

func (a *authRepo) IsEmailExist(ctx context.Context, email string) (bool, error) {
	return exists(ctx, a.DB, &models.User{}, "email = ?", email, uuid.Nil)
}

func (a *authRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := a.DB.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "finding user by email")
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := a.DB.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding user %s", id)
	}
	return &user, nil
}

func (a *authRepo) FindAllUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := a.DB.WithContext(ctx).Preload("Role").Order("name ASC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "listing users")
	}
	return users, nil
}

func (a *authRepo) UpdateUser(ctx context.Context, user *models.User) error {
	return errors.Wrapf(a.DB.WithContext(ctx).Omit(clause.Associations).Save(user).Error, "updating user %s", user.ID)
}

func (a *authRepo) DeleteUserByID(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, a.DB, &models.User{}, id, "user")
}

func (a *authRepo) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, errors.Wrapf(err, "finding role %s", name)
	}
	return &role, nil
}

type tableBlacklist struct {
	DB *gorm.DB
}

// NewTableBlacklist keeps revoked tokens in the blacklists table.
func NewTableBlacklist(db *GormDB) TokenBlacklist {
	return &tableBlacklist{db.DB}
}

func (t *tableBlacklist) AddToBlackList(ctx context.Context, token string, _ time.Duration) error {
	blacklist := &models.Blacklist{Token: normalizeToken(token)}
	err := t.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(blacklist).Error
	return errors.Wrap(err, "blacklisting token")
}

func (t *tableBlacklist) IsTokenInBlacklist(ctx context.Context, token string) bool {
	var count int64
	t.DB.WithContext(ctx).Model(&models.Blacklist{}).Where("token = ?", normalizeToken(token)).Count(&count)
	return count > 0
}

func normalizeToken(token string) string {
	return strings.TrimSpace(token)
}
