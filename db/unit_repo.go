package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnitRepository interface {
	CreateUnit(ctx context.Context, unit *models.Unit) error
	FindAllUnits(ctx context.Context, zoneID *uuid.UUID) ([]models.Unit, error)
	FindUnitByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	UpdateUnit(ctx context.Context, unit *models.Unit) error
	DeleteUnitCascade(ctx context.Context, id uuid.UUID) error
}

type unitRepo struct {
	DB *gorm.DB
}

func NewUnitRepo(db *GormDB) UnitRepository {
	return &unitRepo{db.DB}
}

func (u *unitRepo) CreateUnit(ctx context.Context, unit *models.Unit) error {
	return errors.Wrap(u.DB.WithContext(ctx).Omit(clause.Associations).Create(unit).Error, "creating unit")
}

func (u *unitRepo) FindAllUnits(ctx context.Context, zoneID *uuid.UUID) ([]models.Unit, error) {
	units := []models.Unit{}
	query := u.DB.WithContext(ctx).Preload("Zone")
	if zoneID != nil {
		query = query.Where("zone_id = ?", *zoneID)
	}
	if err := query.Order("name ASC").Find(&units).Error; err != nil {
		return nil, errors.Wrap(err, "listing units")
	}
	return units, nil
}

func (u *unitRepo) FindUnitByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	if err := u.DB.WithContext(ctx).Preload("Zone").First(&unit, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding unit %s", id)
	}
	return &unit, nil
}

func (u *unitRepo) UpdateUnit(ctx context.Context, unit *models.Unit) error {
	return errors.Wrapf(u.DB.WithContext(ctx).Omit(clause.Associations).Save(unit).Error, "updating unit %s", unit.ID)
}

// DeleteUnitCascade removes the unit and every station attached to it.
func (u *unitRepo) DeleteUnitCascade(ctx context.Context, id uuid.UUID) error {
	return u.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, "id = ?", id).Error; err != nil {
			return errors.Wrapf(err, "finding unit %s", id)
		}
		if err := tx.Where("unit_id = ?", id).Delete(&models.PoliceStation{}).Error; err != nil {
			return errors.Wrapf(err, "deleting stations of unit %s", id)
		}
		if err := tx.Delete(&unit).Error; err != nil {
			return errors.Wrapf(err, "deleting unit %s", id)
		}
		return nil
	})
}
