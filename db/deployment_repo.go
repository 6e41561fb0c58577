package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeploymentRepository interface {
	Create(ctx context.Context, record *models.DeploymentRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeploymentRecord, error)
	FindByDateRange(ctx context.Context, start, end time.Time, scope models.Scope) ([]models.DeploymentRecord, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type deploymentRepo struct {
	DB *gorm.DB
}

func NewDeploymentRepo(db *GormDB) DeploymentRepository {
	return &deploymentRepo{db.DB}
}

func (d *deploymentRepo) Create(ctx context.Context, record *models.DeploymentRecord) error {
	if err := d.DB.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return errors.Wrap(err, "saving deployment record")
	}
	return nil
}

func (d *deploymentRepo) preloaded(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx).
		Preload("Zone").
		Preload("Unit").
		Preload("PoliceStation").
		Preload("DutyType").
		Preload("Arrangement").
		Preload("VerifyingOfficer")
}

func (d *deploymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DeploymentRecord, error) {
	var record models.DeploymentRecord
	if err := d.preloaded(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "finding deployment record %s", id)
	}
	return &record, nil
}

// FindByDateRange returns the records whose date lies in [start, end], in
// insertion order, with every reference preloaded.
func (d *deploymentRepo) FindByDateRange(ctx context.Context, start, end time.Time, scope models.Scope) ([]models.DeploymentRecord, error) {
	query := d.preloaded(ctx).Where("date BETWEEN ? AND ?", start, end)
	if scope.ZoneID != nil {
		query = query.Where("zone_id = ?", *scope.ZoneID)
	}
	if scope.UnitID != nil {
		query = query.Where("unit_id = ?", *scope.UnitID)
	}

	records := []models.DeploymentRecord{}
	if err := query.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "querying deployment records")
	}
	return records, nil
}

func (d *deploymentRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := d.DB.WithContext(ctx).Delete(&models.DeploymentRecord{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "deleting deployment record %s", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
