package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfficerRepository interface {
	CreateOfficer(ctx context.Context, officer *models.Officer) error
	FindAllOfficers(ctx context.Context, includeInactive bool) ([]models.Officer, error)
	FindOfficerByID(ctx context.Context, id uuid.UUID) (*models.Officer, error)
	IsBadgeNumberExist(ctx context.Context, badgeNumber string, excludeID uuid.UUID) (bool, error)
	UpdateOfficer(ctx context.Context, officer *models.Officer) error
	UpdateOfficerPhoto(ctx context.Context, id uuid.UUID, photo string) error
	DeactivateOfficer(ctx context.Context, id uuid.UUID) error
}

type officerRepo struct {
	DB *gorm.DB
}

func NewOfficerRepo(db *GormDB) OfficerRepository {
	return &officerRepo{db.DB}
}

func (o *officerRepo) CreateOfficer(ctx context.Context, officer *models.Officer) error {
	return errors.Wrap(o.DB.WithContext(ctx).Omit(clause.Associations).Create(officer).Error, "creating officer")
}

func (o *officerRepo) preloaded(ctx context.Context) *gorm.DB {
	return o.DB.WithContext(ctx).Preload("Zone").Preload("Unit").Preload("PoliceStation")
}

func (o *officerRepo) FindAllOfficers(ctx context.Context, includeInactive bool) ([]models.Officer, error) {
	officers := []models.Officer{}
	query := o.preloaded(ctx)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&officers).Error; err != nil {
		return nil, errors.Wrap(err, "listing officers")
	}
	return officers, nil
}

func (o *officerRepo) FindOfficerByID(ctx context.Context, id uuid.UUID) (*models.Officer, error) {
	var officer models.Officer
	if err := o.preloaded(ctx).First(&officer, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding officer %s", id)
	}
	return &officer, nil
}

func (o *officerRepo) IsBadgeNumberExist(ctx context.Context, badgeNumber string, excludeID uuid.UUID) (bool, error) {
	return exists(ctx, o.DB, &models.Officer{}, "badge_number = ?", badgeNumber, excludeID)
}

func (o *officerRepo) UpdateOfficer(ctx context.Context, officer *models.Officer) error {
	return errors.Wrapf(o.DB.WithContext(ctx).Omit(clause.Associations).Save(officer).Error, "updating officer %s", officer.ID)
}

func (o *officerRepo) UpdateOfficerPhoto(ctx context.Context, id uuid.UUID, photo string) error {
	result := o.DB.WithContext(ctx).Model(&models.Officer{}).Where("id = ?", id).Update("photo", photo)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "updating photo of officer %s", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateOfficer is the officer delete: the row stays so records that
// name the officer still resolve.
func (o *officerRepo) DeactivateOfficer(ctx context.Context, id uuid.UUID) error {
	result := o.DB.WithContext(ctx).Model(&models.Officer{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "deactivating officer %s", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
