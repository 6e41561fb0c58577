package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ZoneRepository interface {
	CreateZone(ctx context.Context, zone *models.Zone) error
	FindAllZones(ctx context.Context) ([]models.Zone, error)
	FindZoneByID(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	IsZoneNameExist(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	UpdateZone(ctx context.Context, zone *models.Zone) error
	DeleteZoneCascade(ctx context.Context, id uuid.UUID) error
}

type zoneRepo struct {
	DB *gorm.DB
}

func NewZoneRepo(db *GormDB) ZoneRepository {
	return &zoneRepo{db.DB}
}

func (z *zoneRepo) CreateZone(ctx context.Context, zone *models.Zone) error {
	return errors.Wrap(z.DB.WithContext(ctx).Create(zone).Error, "creating zone")
}

func (z *zoneRepo) FindAllZones(ctx context.Context) ([]models.Zone, error) {
	zones := []models.Zone{}
	if err := z.DB.WithContext(ctx).Order("name ASC").Find(&zones).Error; err != nil {
		return nil, errors.Wrap(err, "listing zones")
	}
	return zones, nil
}

func (z *zoneRepo) FindZoneByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	var zone models.Zone
	if err := z.DB.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding zone %s", id)
	}
	return &zone, nil
}

func (z *zoneRepo) IsZoneNameExist(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return exists(ctx, z.DB, &models.Zone{}, "name = ?", name, excludeID)
}

func (z *zoneRepo) UpdateZone(ctx context.Context, zone *models.Zone) error {
	return errors.Wrapf(z.DB.WithContext(ctx).Omit(clause.Associations).Save(zone).Error, "updating zone %s", zone.ID)
}

// DeleteZoneCascade removes the zone, its units and the stations of those
// units in one transaction.
func (z *zoneRepo) DeleteZoneCascade(ctx context.Context, id uuid.UUID) error {
	return z.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone models.Zone
		if err := tx.First(&zone, "id = ?", id).Error; err != nil {
			return errors.Wrapf(err, "finding zone %s", id)
		}

		var unitIDs []uuid.UUID
		if err := tx.Model(&models.Unit{}).Where("zone_id = ?", id).Pluck("id", &unitIDs).Error; err != nil {
			return errors.Wrapf(err, "listing units of zone %s", id)
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("unit_id IN ?", unitIDs).Delete(&models.PoliceStation{}).Error; err != nil {
				return errors.Wrapf(err, "deleting stations of zone %s", id)
			}
			if err := tx.Where("zone_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
				return errors.Wrapf(err, "deleting units of zone %s", id)
			}
		}

		if err := tx.Delete(&zone).Error; err != nil {
			return errors.Wrapf(err, "deleting zone %s", id)
		}
		return nil
	})
}

// exists reports whether a row of model matches cond/value, ignoring the row
// with excludeID so updates can keep their own name.
func exists(ctx context.Context, db *gorm.DB, model interface{}, cond string, value interface{}, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(model).Where(cond, value)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "checking uniqueness")
	}
	return count > 0, nil
}
