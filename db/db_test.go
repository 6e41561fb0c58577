package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/dutyreport/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *GormDB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), GormConfig("test"))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(gdb))
	require.NoError(t, SeedRoles(gdb))
	return NewGormDB(gdb)
}

type fixture struct {
	zone      models.Zone
	unit      models.Unit
	station   models.PoliceStation
	duty      models.DutyType
	officer   models.Officer
	otherZone models.Zone
}

func seedFixture(t *testing.T, g *GormDB) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{}

	f.zone = models.Zone{Name: "North"}
	require.NoError(t, NewZoneRepo(g).CreateZone(ctx, &f.zone))
	f.otherZone = models.Zone{Name: "South"}
	require.NoError(t, NewZoneRepo(g).CreateZone(ctx, &f.otherZone))

	f.unit = models.Unit{Name: "A", Type: "Division", ZoneID: f.zone.ID}
	require.NoError(t, NewUnitRepo(g).CreateUnit(ctx, &f.unit))

	f.station = models.PoliceStation{Name: "S1", Address: "Main road", UnitID: &f.unit.ID}
	require.NoError(t, NewPoliceStationRepo(g).CreateStation(ctx, &f.station))

	f.duty = models.DutyType{Name: "Patrol"}
	require.NoError(t, NewDutyTypeRepo(g).CreateDutyType(ctx, &f.duty))

	f.officer = models.Officer{Name: "Insp. Rao", BadgeNumber: "B-100", Rank: "Inspector", ZoneID: f.zone.ID, IsActive: true}
	require.NoError(t, NewOfficerRepo(g).CreateOfficer(ctx, &f.officer))
	return f
}

func (f fixture) record(date time.Time, day, night int) *models.DeploymentRecord {
	return &models.DeploymentRecord{
		Date:               date,
		ZoneID:             f.zone.ID,
		UnitID:             f.unit.ID,
		PoliceStationID:    f.station.ID,
		DutyTypeID:         f.duty.ID,
		DayDutyCount:       day,
		NightDutyCount:     night,
		VerifyingOfficerID: f.officer.ID,
		Images:             models.StringList{"https://bucket/a.jpg"},
	}
}

func TestUnitDeleteRemovesStations(t *testing.T) {
	g := newTestDB(t)
	f := seedFixture(t, g)
	ctx := context.Background()

	other := models.Unit{Name: "B", ZoneID: f.zone.ID}
	require.NoError(t, NewUnitRepo(g).CreateUnit(ctx, &other))
	kept := models.PoliceStation{Name: "S9", UnitID: &other.ID}
	require.NoError(t, NewPoliceStationRepo(g).CreateStation(ctx, &kept))

	require.NoError(t, NewUnitRepo(g).DeleteUnitCascade(ctx, f.unit.ID))

	stations, err := NewPoliceStationRepo(g).FindAllStations(ctx, nil)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, kept.ID, stations[0].ID)

	_, err = NewUnitRepo(g).FindUnitByID(ctx, f.unit.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestZoneDeleteRemovesUnitsAndStations(t *testing.T) {
	g := newTestDB(t)
	f := seedFixture(t, g)
	ctx := context.Background()

	southUnit := models.Unit{Name: "C", ZoneID: f.otherZone.ID}
	require.NoError(t, NewUnitRepo(g).CreateUnit(ctx, &southUnit))
	southStation := models.PoliceStation{Name: "S3", UnitID: &southUnit.ID}
	require.NoError(t, NewPoliceStationRepo(g).CreateStation(ctx, &southStation))

	require.NoError(t, NewZoneRepo(g).DeleteZoneCascade(ctx, f.zone.ID))

	zones, err := NewZoneRepo(g).FindAllZones(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "South", zones[0].Name)

	units, err := NewUnitRepo(g).FindAllUnits(ctx, nil)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, southUnit.ID, units[0].ID)

	stations, err := NewPoliceStationRepo(g).FindAllStations(ctx, nil)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, southStation.ID, stations[0].ID)
}

func TestDeleteMissingZone(t *testing.T) {
	g := newTestDB(t)
	err := NewZoneRepo(g).DeleteZoneCascade(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestOfficerDeactivation(t *testing.T) {
	g := newTestDB(t)
	f := seedFixture(t, g)
	ctx := context.Background()
	repo := NewOfficerRepo(g)

	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, NewDeploymentRepo(g).Create(ctx, f.record(date, 2, 1)))

	require.NoError(t, repo.DeactivateOfficer(ctx, f.officer.ID))

	active, err := repo.FindAllOfficers(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.FindAllOfficers(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	records, err := NewDeploymentRepo(g).FindByDateRange(ctx, start, start.AddDate(0, 0, 1).Add(-time.Millisecond), models.Scope{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].VerifyingOfficer)
	assert.Equal(t, "Insp. Rao", records[0].VerifyingOfficer.Name)

	assert.True(t, errors.Is(repo.DeactivateOfficer(ctx, uuid.New()), gorm.ErrRecordNotFound))
}

func TestBadgeNumberExists(t *testing.T) {
	g := newTestDB(t)
	f := seedFixture(t, g)
	ctx := context.Background()
	repo := NewOfficerRepo(g)

	found, err := repo.IsBadgeNumberExist(ctx, "B-100", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.IsBadgeNumberExist(ctx, "B-100", f.officer.ID)
	require.NoError(t, err)
	assert.False(t, found)

	dup := models.Officer{Name: "Other", BadgeNumber: "B-100", ZoneID: f.zone.ID}
	err = repo.CreateOfficer(ctx, &dup)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestFindByDateRange(t *testing.T) {
	g := newTestDB(t)
	f := seedFixture(t, g)
	ctx := context.Background()
	repo := NewDeploymentRepo(g)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	require.NoError(t, repo.Create(ctx, f.record(day.Add(-time.Hour), 9, 9)))
	require.NoError(t, repo.Create(ctx, f.record(day.Add(8*time.Hour), 5, 3)))
	require.NoError(t, repo.Create(ctx, f.record(day.Add(20*time.Hour), 2, 2)))
	require.NoError(t, repo.Create(ctx, f.record(day.AddDate(0, 0, 1).Add(time.Hour), 7, 7)))

	end := day.AddDate(0, 0, 1).Add(-time.Millisecond)
	records, err := repo.FindByDateRange(ctx, day, end, models.Scope{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 5, records[0].DayDutyCount)
	assert.Equal(t, 8, records[0].DutyCount)
	assert.Equal(t, "North", records[0].Zone.Name)
	assert.Equal(t, "A", records[0].Unit.Name)
	assert.Equal(t, "S1", records[0].PoliceStation.Name)
	assert.Equal(t, "Patrol", records[0].DutyType.Name)
	assert.Nil(t, records[0].Arrangement)
	assert.Equal(t, models.StringList{"https://bucket/a.jpg"}, records[0].Images)

	scoped, err := repo.FindByDateRange(ctx, day, end, models.Scope{ZoneID: &f.otherZone.ID})
	require.NoError(t, err)
	assert.Empty(t, scoped)
}

func TestDeleteDeploymentRecord(t *testing.T) {
	g := newTestDB(t)
	f := seedFixture(t, g)
	ctx := context.Background()
	repo := NewDeploymentRepo(g)

	record := f.record(time.Now(), 1, 1)
	require.NoError(t, repo.Create(ctx, record))
	require.NoError(t, repo.DeleteByID(ctx, record.ID))
	assert.True(t, errors.Is(repo.DeleteByID(ctx, record.ID), gorm.ErrRecordNotFound))
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	g := newTestDB(t)
	require.NoError(t, SeedAdmin(g.DB, "admin@example.com", "secret-pass", "Admin"))
	require.NoError(t, SeedAdmin(g.DB, "admin@example.com", "secret-pass", "Admin"))

	users, err := NewAuthRepo(g).FindAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
	assert.NotEqual(t, "secret-pass", users[0].HashedPassword)
}

func TestTableBlacklist(t *testing.T) {
	g := newTestDB(t)
	ctx := context.Background()
	blacklist := NewTableBlacklist(g)

	assert.False(t, blacklist.IsTokenInBlacklist(ctx, "abc"))
	require.NoError(t, blacklist.AddToBlackList(ctx, " abc ", time.Hour))
	require.NoError(t, blacklist.AddToBlackList(ctx, "abc", time.Hour))
	assert.True(t, blacklist.IsTokenInBlacklist(ctx, "abc"))
}

func TestRedisBlacklistLogsLookupFailures(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	blacklist := NewRedisBlacklist(client, logger)
	assert.False(t, blacklist.IsTokenInBlacklist(context.Background(), "Bearer some-token"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "IsTokenInBlacklist", entry.Data["funcName"])
}
