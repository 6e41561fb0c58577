package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
)

type DutyTypeRepository interface {
	CreateDutyType(ctx context.Context, dutyType *models.DutyType) error
	FindAllDutyTypes(ctx context.Context) ([]models.DutyType, error)
	FindDutyTypeByID(ctx context.Context, id uuid.UUID) (*models.DutyType, error)
	IsDutyTypeNameExist(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	UpdateDutyType(ctx context.Context, dutyType *models.DutyType) error
	DeleteDutyTypeByID(ctx context.Context, id uuid.UUID) error
}

type ArrangementRepository interface {
	CreateArrangement(ctx context.Context, arrangement *models.Arrangement) error
	FindAllArrangements(ctx context.Context) ([]models.Arrangement, error)
	FindArrangementByID(ctx context.Context, id uuid.UUID) (*models.Arrangement, error)
	UpdateArrangement(ctx context.Context, arrangement *models.Arrangement) error
	DeleteArrangementByID(ctx context.Context, id uuid.UUID) error
}

type dutyRepo struct {
	DB *gorm.DB
}

func NewDutyTypeRepo(db *GormDB) DutyTypeRepository {
	return &dutyRepo{db.DB}
}

func NewArrangementRepo(db *GormDB) ArrangementRepository {
	return &dutyRepo{db.DB}
}

func (d *dutyRepo) CreateDutyType(ctx context.Context, dutyType *models.DutyType) error {
	return errors.Wrap(d.DB.WithContext(ctx).Create(dutyType).Error, "creating duty type")
}

func (d *dutyRepo) FindAllDutyTypes(ctx context.Context) ([]models.DutyType, error) {
	dutyTypes := []models.DutyType{}
	if err := d.DB.WithContext(ctx).Order("name ASC").Find(&dutyTypes).Error; err != nil {
		return nil, errors.Wrap(err, "listing duty types")
	}
	return dutyTypes, nil
}

func (d *dutyRepo) FindDutyTypeByID(ctx context.Context, id uuid.UUID) (*models.DutyType, error) {
	var dutyType models.DutyType
	if err := d.DB.WithContext(ctx).First(&dutyType, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding duty type %s", id)
	}
	return &dutyType, nil
}

func (d *dutyRepo) IsDutyTypeNameExist(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return exists(ctx, d.DB, &models.DutyType{}, "name = ?", name, excludeID)
}

func (d *dutyRepo) UpdateDutyType(ctx context.Context, dutyType *models.DutyType) error {
	return errors.Wrapf(d.DB.WithContext(ctx).Save(dutyType).Error, "updating duty type %s", dutyType.ID)
}

// DeleteDutyTypeByID removes the duty type. Records keep their dangling
// reference and render it as unknown.
func (d *dutyRepo) DeleteDutyTypeByID(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, d.DB, &models.DutyType{}, id, "duty type")
}

func (d *dutyRepo) CreateArrangement(ctx context.Context, arrangement *models.Arrangement) error {
	return errors.Wrap(d.DB.WithContext(ctx).Create(arrangement).Error, "creating arrangement")
}

func (d *dutyRepo) FindAllArrangements(ctx context.Context) ([]models.Arrangement, error) {
	arrangements := []models.Arrangement{}
	if err := d.DB.WithContext(ctx).Order("name ASC").Find(&arrangements).Error; err != nil {
		return nil, errors.Wrap(err, "listing arrangements")
	}
	return arrangements, nil
}

func (d *dutyRepo) FindArrangementByID(ctx context.Context, id uuid.UUID) (*models.Arrangement, error) {
	var arrangement models.Arrangement
	if err := d.DB.WithContext(ctx).First(&arrangement, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding arrangement %s", id)
	}
	return &arrangement, nil
}

func (d *dutyRepo) UpdateArrangement(ctx context.Context, arrangement *models.Arrangement) error {
	return errors.Wrapf(d.DB.WithContext(ctx).Save(arrangement).Error, "updating arrangement %s", arrangement.ID)
}

func (d *dutyRepo) DeleteArrangementByID(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, d.DB, &models.Arrangement{}, id, "arrangement")
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, name string) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "deleting %s %s", name, id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
