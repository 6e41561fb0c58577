package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

// GetDB opens the postgres pool, tunes it from c and runs migrations.
func GetDB(c *config.Config) (*GormDB, error) {
	gormDB, err := getPostgresDB(c)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting sql.DB")
	}
	sqlDB.SetMaxOpenConns(c.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(c.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(c.DBConnMaxLifetimeSeconds) * time.Second)

	if err := Migrate(gormDB); err != nil {
		return nil, errors.Wrap(err, "unable to run migrations")
	}
	return &GormDB{DB: gormDB}, nil
}

// NewGormDB wraps an already opened connection.
func NewGormDB(db *gorm.DB) *GormDB {
	return &GormDB{DB: db}
}

// GormConfig is shared by every dialector so duplicate-key errors are
// translated the same way everywhere.
func GormConfig(env string) *gorm.Config {
	gormConfig := &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	}
	if env == "dev" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	return gormConfig
}

func getPostgresDB(c *config.Config) (*gorm.DB, error) {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), GormConfig(c.Env))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return gormDB, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Blacklist{},
		&models.Zone{},
		&models.Unit{},
		&models.PoliceStation{},
		&models.Officer{},
		&models.DutyType{},
		&models.Arrangement{},
		&models.DeploymentRecord{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}
	return nil
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleUser},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return errors.Wrapf(err, "seeding role %s", role.Name)
		}
	}
	return nil
}

// SeedAdmin creates the initial admin account when no user with email
// exists yet. An empty email or password disables seeding.
func SeedAdmin(db *gorm.DB, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "checking admin account")
	}
	if count > 0 {
		return nil
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return errors.Wrap(err, "finding admin role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing admin password")
	}

	admin := &models.User{
		Email:          email,
		Name:           name,
		HashedPassword: string(hashedPassword),
		RoleID:         role.ID,
		IsActive:       true,
	}
	return errors.Wrap(db.Omit("Role").Create(admin).Error, "creating admin account")
}
