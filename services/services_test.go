package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	errs "github.com/techagentng/dutyreport/errors"
	"github.com/techagentng/dutyreport/models"
)

type fakeMediaRepo struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeMediaRepo) Upload(_ context.Context, key, contentType string, body []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return "https://media.test/" + key, nil
}

type testEnv struct {
	conf       *config.Config
	media      *fakeMediaRepo
	org        OrganizationService
	duty       DutyService
	officers   OfficerService
	deployment DeploymentService
	auth       AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), db.GormConfig("test"))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.SeedRoles(gdb))

	g := db.NewGormDB(gdb)
	conf := &config.Config{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 1,
		StaffOfficers:       4,
		MalePersonnel:       20,
		FemalePersonnel:     6,
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	media := &fakeMediaRepo{}
	mediaService := NewMediaService(media, conf, logger)
	zones, units, stations := db.NewZoneRepo(g), db.NewUnitRepo(g), db.NewPoliceStationRepo(g)
	officers := db.NewOfficerRepo(g)

	return &testEnv{
		conf:     conf,
		media:    media,
		org:      NewOrganizationService(zones, units, stations, conf, logger),
		duty:     NewDutyService(db.NewDutyTypeRepo(g), db.NewArrangementRepo(g), conf, logger),
		officers: NewOfficerService(officers, zones, units, stations, mediaService, conf, logger),
		deployment: NewDeploymentService(DeploymentRepos{
			Deployments:  db.NewDeploymentRepo(g),
			Zones:        zones,
			Units:        units,
			Stations:     stations,
			DutyTypes:    db.NewDutyTypeRepo(g),
			Arrangements: db.NewArrangementRepo(g),
			Officers:     officers,
		}, mediaService, conf, logger),
		auth: NewAuthService(db.NewAuthRepo(g), zones, units, db.NewTableBlacklist(g), conf, logger),
	}
}

type hierarchy struct {
	zone    *models.Zone
	unit    *models.Unit
	station *models.PoliceStation
	duty    *models.DutyType
	officer *models.Officer
}

func (e *testEnv) seedHierarchy(t *testing.T, zoneName string) hierarchy {
	t.Helper()
	ctx := context.Background()
	h := hierarchy{}
	var err error

	h.zone, err = e.org.CreateZone(ctx, &models.ZoneRequest{Name: zoneName})
	require.NoError(t, err)
	h.unit, err = e.org.CreateUnit(ctx, &models.UnitRequest{Name: zoneName + " Unit", ZoneID: h.zone.ID.String()})
	require.NoError(t, err)
	h.station, err = e.org.CreateStation(ctx, &models.PoliceStationRequest{Name: zoneName + " Station", UnitID: h.unit.ID.String()})
	require.NoError(t, err)
	h.duty, err = e.duty.CreateDutyType(ctx, &models.DutyTypeRequest{Name: zoneName + " Patrol"})
	require.NoError(t, err)
	h.officer, err = e.officers.CreateOfficer(ctx, &models.OfficerRequest{
		Name:        zoneName + " Officer",
		BadgeNumber: zoneName + "-1",
		Rank:        "Inspector",
		ZoneID:      h.zone.ID.String(),
	})
	require.NoError(t, err)
	return h
}

func (h hierarchy) request(date string, day, night int) *models.DeploymentRequest {
	return &models.DeploymentRequest{
		Date:               date,
		ZoneID:             h.zone.ID.String(),
		UnitID:             h.unit.ID.String(),
		PoliceStationID:    h.station.ID.String(),
		DutyTypeID:         h.duty.ID.String(),
		VerifyingOfficerID: h.officer.ID.String(),
		DayDutyCount:       day,
		NightDutyCount:     night,
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeaders(t *testing.T, field string, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field]
}

func TestDuplicateBadgeNumber(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")

	_, err := e.officers.CreateOfficer(context.Background(), &models.OfficerRequest{
		Name:        "Someone Else",
		BadgeNumber: h.officer.BadgeNumber,
		Rank:        "Constable",
		ZoneID:      h.zone.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindDuplicateKey))
	apiErr, _ := errs.As(err)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestDuplicateZoneAndDutyTypeNames(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")
	ctx := context.Background()

	_, err := e.org.CreateZone(ctx, &models.ZoneRequest{Name: "North"})
	assert.True(t, errs.IsKind(err, errs.KindDuplicateKey))

	_, err = e.duty.CreateDutyType(ctx, &models.DutyTypeRequest{Name: h.duty.Name})
	assert.True(t, errs.IsKind(err, errs.KindDuplicateKey))

	updated, err := e.org.UpdateZone(ctx, h.zone.ID, &models.ZoneRequest{Name: "North"})
	require.NoError(t, err)
	assert.Equal(t, "North", updated.Name)
}

func TestUnitRequiresExistingZone(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.org.CreateUnit(context.Background(), &models.UnitRequest{Name: "A", ZoneID: "0b5c7a9e-62a4-4d0a-9b8d-2f8b1d2a7c11"})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestDeleteUnitRemovesItsStations(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")
	ctx := context.Background()

	require.NoError(t, e.org.DeleteUnit(ctx, h.unit.ID))

	stations, err := e.org.GetStations(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, stations)

	err = e.org.DeleteUnit(ctx, h.unit.ID)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestCreateRecordAndSummary(t *testing.T) {
	e := newTestEnv(t)
	north := e.seedHierarchy(t, "North")
	south := e.seedHierarchy(t, "South")
	ctx := context.Background()

	_, err := e.deployment.CreateRecord(ctx, north.request("2024-03-01", 3, 0), nil)
	require.NoError(t, err)
	_, err = e.deployment.CreateRecord(ctx, south.request("2024-03-01", 1, 1), nil)
	require.NoError(t, err)
	created, err := e.deployment.CreateRecord(ctx, north.request("2024-03-01", 2, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, created.DutyCount)
	require.NotNil(t, created.PoliceStation)
	assert.Equal(t, "North Station", created.PoliceStation.Name)
	_, err = e.deployment.CreateRecord(ctx, north.request("2024-03-02", 9, 9), nil)
	require.NoError(t, err)

	s, err := e.deployment.GetSummary(ctx, "2024-03-01", models.Scope{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", s.Date)
	require.Equal(t, 2, s.ZoneWiseSummary.Len())
	assert.Equal(t, "North", s.ZoneWiseSummary.Oldest().Key)

	zone, _ := s.ZoneWiseSummary.Get("North")
	assert.Equal(t, 5, zone.DayDuty)
	assert.Equal(t, 1, zone.NightDuty)
	assert.Equal(t, 6, zone.TotalPersonnel)
	unit, _ := zone.Units.Get("North Unit")
	require.Len(t, unit.Stations, 2)
	assert.Equal(t, "North Officer", unit.Stations[0].VerifyingOfficer)

	assert.Equal(t, 8, s.GrandTotals.TotalPersonnel)
	assert.Equal(t, 30, s.PersonnelAllocation.Total)

	scoped, err := e.deployment.GetSummary(ctx, "2024-03-01", models.Scope{ZoneID: &south.zone.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.ZoneWiseSummary.Len())
	assert.Equal(t, 2, scoped.GrandTotals.TotalPersonnel)
}

func TestSummaryRejectsBadDate(t *testing.T) {
	e := newTestEnv(t)
	for _, date := range []string{"", "03/01/2024"} {
		_, err := e.deployment.GetSummary(context.Background(), date, models.Scope{})
		assert.True(t, errs.IsKind(err, errs.KindInvalidArgument), date)
		_, err = e.deployment.GetRecords(context.Background(), date, models.Scope{})
		assert.True(t, errs.IsKind(err, errs.KindInvalidArgument), date)
	}
}

func TestCreateRecordValidatesReferences(t *testing.T) {
	e := newTestEnv(t)
	north := e.seedHierarchy(t, "North")
	south := e.seedHierarchy(t, "South")
	ctx := context.Background()

	mixed := north.request("2024-03-01", 1, 0)
	mixed.UnitID = south.unit.ID.String()
	_, err := e.deployment.CreateRecord(ctx, mixed, nil)
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	require.NoError(t, e.officers.DeleteOfficer(ctx, north.officer.ID))
	_, err = e.deployment.CreateRecord(ctx, north.request("2024-03-01", 1, 0), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")

	badDate := south.request("1 March", 1, 0)
	_, err = e.deployment.CreateRecord(ctx, badDate, nil)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestDeactivatedOfficerStillResolvesOnRecords(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")
	ctx := context.Background()

	_, err := e.deployment.CreateRecord(ctx, h.request("2024-03-01", 1, 0), nil)
	require.NoError(t, err)
	require.NoError(t, e.officers.DeleteOfficer(ctx, h.officer.ID))

	active, err := e.officers.GetOfficers(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	records, err := e.deployment.GetRecords(ctx, "2024-03-01", models.Scope{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].VerifyingOfficer)
	assert.Equal(t, "North Officer", records[0].VerifyingOfficer.Name)
}

func TestCreateRecordUploadsImages(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")

	files := fileHeaders(t, "images", map[string][]byte{"scene.png": pngBytes(t, 640, 480)})
	record, err := e.deployment.CreateRecord(context.Background(), h.request("2024-03-01", 1, 0), files)
	require.NoError(t, err)

	require.Len(t, record.Images, 1)
	assert.True(t, strings.HasPrefix(record.Images[0], "https://media.test/deployments/2024-03-01/"))
	assert.Len(t, e.media.keys, 2)
}

func TestUploadRejectsNonImages(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")

	files := fileHeaders(t, "photo", map[string][]byte{"notes.txt": []byte("not an image at all")})
	_, err := e.officers.UploadPhoto(context.Background(), h.officer.ID, files[0])
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Empty(t, e.media.keys)
}

// inflatedPNG returns a tiny PNG whose header claims w x h pixels.
func inflatedPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngBytes(t, 1, 1)
	// IHDR data starts after the 8-byte signature and the 8-byte chunk header.
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestUploadRejectsOversizedDimensions(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")

	files := fileHeaders(t, "photo", map[string][]byte{"bomb.png": inflatedPNG(t, 100000, 100000)})
	_, err := e.officers.UploadPhoto(context.Background(), h.officer.ID, files[0])
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Contains(t, err.Error(), "too large")
	assert.Empty(t, e.media.keys)
}

func TestOfficerPhotoUpload(t *testing.T) {
	e := newTestEnv(t)
	h := e.seedHierarchy(t, "North")

	files := fileHeaders(t, "photo", map[string][]byte{"face.png": pngBytes(t, 2400, 1200)})
	officer, err := e.officers.UploadPhoto(context.Background(), h.officer.ID, files[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(officer.Photo, "https://media.test/officers/"+h.officer.ID.String()+"/"))
}

func TestProcessImageBoundsSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3000, 1500))
	full, thumb, err := processImage(img)
	require.NoError(t, err)

	decoded, _, err := image.Decode(full)
	require.NoError(t, err)
	assert.Equal(t, MaxImageSide, decoded.Bounds().Dx())
	assert.Equal(t, MaxImageSide/2, decoded.Bounds().Dy())

	decodedThumb, _, err := image.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, decodedThumb.Bounds().Dx())
}

func TestUserLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	admin, err := e.auth.CreateUser(ctx, &models.UserRequest{Email: "chief@example.com", Name: "Chief", Password: "long-enough-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = e.auth.CreateUser(ctx, &models.UserRequest{Email: "chief@example.com", Name: "Again", Password: "long-enough-1"})
	assert.True(t, errs.IsKind(err, errs.KindDuplicateKey))

	_, err = e.auth.CreateUser(ctx, &models.UserRequest{Email: "short@example.com", Name: "Short", Password: "abc"})
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	_, apiErr := e.auth.LoginUser(ctx, &models.LoginRequest{Email: "chief@example.com", Password: "wrong-password"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, apiErr = e.auth.LoginUser(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "whatever-123"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	login, apiErr := e.auth.LoginUser(ctx, &models.LoginRequest{Email: "chief@example.com", Password: "long-enough-1"})
	require.Nil(t, apiErr)
	assert.NotEmpty(t, login.AccessToken)
	assert.True(t, login.ExpiresAt.After(time.Now()))

	err = e.auth.DeleteUser(ctx, admin, admin.ID)
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	inactive := false
	_, err = e.auth.UpdateUser(ctx, admin.ID, &models.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, apiErr = e.auth.LoginUser(ctx, &models.LoginRequest{Email: "chief@example.com", Password: "long-enough-1"})
	require.NotNil(t, apiErr)
	assert.Equal(t, errs.ErrInactiveUser, apiErr)
}

func TestUserScopeMustReferenceExistingZoneAndUnit(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	north := e.seedHierarchy(t, "North")
	south := e.seedHierarchy(t, "South")

	_, err := e.auth.CreateUser(ctx, &models.UserRequest{Email: "ghost@example.com", Name: "Ghost", Password: "long-enough-1", ZoneID: uuid.New().String()})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Contains(t, err.Error(), "zone does not exist")

	_, err = e.auth.CreateUser(ctx, &models.UserRequest{
		Email:    "mixed@example.com",
		Name:     "Mixed",
		Password: "long-enough-1",
		ZoneID:   north.zone.ID.String(),
		UnitID:   south.unit.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Contains(t, err.Error(), "unit does not belong to the zone")

	user, err := e.auth.CreateUser(ctx, &models.UserRequest{Email: "desk@example.com", Name: "Desk", Password: "long-enough-1", UnitID: north.unit.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, user.ZoneID)
	assert.Equal(t, north.zone.ID, *user.ZoneID)
	assert.Equal(t, north.unit.ID, *user.UnitID)

	southZone := south.zone.ID.String()
	_, err = e.auth.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{ZoneID: &southZone})
	assert.True(t, errs.IsKind(err, errs.KindValidation), "unit still points at the old zone")

	empty := ""
	updated, err := e.auth.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{ZoneID: &empty, UnitID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ZoneID)
	assert.Nil(t, updated.UnitID)

	reloaded, err := e.auth.GetUserProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ZoneID)
	assert.Nil(t, reloaded.UnitID)
	assert.Equal(t, models.Scope{}, reloaded.Scope())
}
