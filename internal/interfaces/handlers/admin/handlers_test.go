package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	activitysvc "roomstay-backend/internal/application/activity"
	"roomstay-backend/internal/application/lifecycle"
	listingsvc "roomstay-backend/internal/application/listings"
	"roomstay-backend/internal/domain"
	"roomstay-backend/internal/middleware"
	"roomstay-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.ActivityLog{}))
	lc := &lifecycle.Service{DB: db}
	h := &Handlers{
		Listings:  &listingsvc.Service{DB: db, Lifecycle: lc},
		Lifecycle: lc,
		Activity:  &activitysvc.Service{DB: db},
	}
	return h, db
}

func adminApp(h *Handlers, userID uuid.UUID, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": userID.String(), "role": role})
		return c.Next()
	})
	app.Use(middleware.AuthorizePermission(constants.ModerateListing))
	app.Get("/pending-listings", h.PendingListings)
	app.Post("/approve-listing", h.ApproveListing)
	app.Post("/reject-listing", h.RejectListing)
	app.Get("/recent-activity", h.RecentActivity)
	return app
}

func createPendingListing(t *testing.T, db *gorm.DB) *domain.Listing {
	ownerID := uuid.New()
	l := &domain.Listing{OwnerID: &ownerID, Title: "Pending room", Location: "Iloilo", Price: 1800, Status: domain.ListingStatusPending}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestApproveListing_HappyPath(t *testing.T) {
	h, db := setupAdminTest(t)
	l := createPendingListing(t, db)
	adminID := uuid.New()
	app := adminApp(h, adminID, constants.Admin)

	body, _ := json.Marshal(map[string]string{"listing_id": l.ListingID.String()})
	req := httptest.NewRequest("POST", "/approve-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, domain.ListingStatusApproved, data["status"])
	assert.NotNil(t, data["expires_at"])

	var entry domain.ActivityLog
	require.NoError(t, db.Where("listing_id = ?", l.ListingID).First(&entry).Error)
	assert.Equal(t, domain.ActivityListingApprove, entry.Kind)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, adminID, *entry.ActorID)
}

// Moderation requires the admin role; owners get 403.
func TestApproveListing_ForbiddenForOwner(t *testing.T) {
	h, db := setupAdminTest(t)
	l := createPendingListing(t, db)
	app := adminApp(h, uuid.New(), constants.Owner)

	body, _ := json.Marshal(map[string]string{"listing_id": l.ListingID.String()})
	req := httptest.NewRequest("POST", "/approve-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestApproveListing_UnknownListing(t *testing.T) {
	h, _ := setupAdminTest(t)
	app := adminApp(h, uuid.New(), constants.Admin)

	body, _ := json.Marshal(map[string]string{"listing_id": uuid.NewString()})
	req := httptest.NewRequest("POST", "/approve-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRejectListing_PersistsReason(t *testing.T) {
	h, db := setupAdminTest(t)
	l := createPendingListing(t, db)
	app := adminApp(h, uuid.New(), constants.Admin)

	body, _ := json.Marshal(map[string]string{"listing_id": l.ListingID.String(), "reason": "Address could not be verified"})
	req := httptest.NewRequest("POST", "/reject-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entry domain.ActivityLog
	require.NoError(t, db.Where("listing_id = ?", l.ListingID).First(&entry).Error)
	assert.Equal(t, domain.ActivityListingReject, entry.Kind)
	assert.Contains(t, string(entry.Meta), "Address could not be verified")
}

func TestPendingListings_ReturnsQueue(t *testing.T) {
	h, db := setupAdminTest(t)
	createPendingListing(t, db)
	createPendingListing(t, db)
	app := adminApp(h, uuid.New(), constants.Admin)

	req := httptest.NewRequest("GET", "/pending-listings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestRecentActivity_ReturnsEntries(t *testing.T) {
	h, db := setupAdminTest(t)
	l := createPendingListing(t, db)
	require.NoError(t, db.Create(&domain.ActivityLog{Kind: domain.ActivityListingApprove, ListingID: &l.ListingID}).Error)
	app := adminApp(h, uuid.New(), constants.Admin)

	req := httptest.NewRequest("GET", "/recent-activity?limit=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].([]interface{})
	require.Len(t, data, 1)
	entry, _ := data[0].(map[string]interface{})
	assert.Equal(t, domain.ActivityListingApprove, entry["kind"])
}
