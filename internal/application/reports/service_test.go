package reports

import (
	"context"
	"strings"
	"testing"
	"time"

	"roomstay-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var reportNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func setupReports(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Listing{}, &domain.Review{}, &domain.Inquiry{}, &domain.ActivityLog{},
	))
	return &Service{DB: db, Now: func() time.Time { return reportNow }}, db
}

func createListingAt(t *testing.T, db *gorm.DB, created time.Time) *domain.Listing {
	l := &domain.Listing{Title: "Room", Location: "Cebu", Price: 3000, Status: domain.ListingStatusPending}
	require.NoError(t, db.Create(l).Error)
	require.NoError(t, db.Model(l).UpdateColumn("createdAt", created).Error)
	return l
}

func TestKpis_WindowedCounts(t *testing.T) {
	svc, db := setupReports(t)

	require.NoError(t, db.Create(&domain.User{Fullname: "A", Email: "a@t.com", PasswordHash: "x", Role: "tenant"}).Error)
	require.NoError(t, db.Create(&domain.User{Fullname: "B", Email: "b@t.com", PasswordHash: "x", Role: "owner"}).Error)

	recent := createListingAt(t, db, reportNow.AddDate(0, 0, -5))
	createListingAt(t, db, reportNow.AddDate(0, 0, -90))

	rev := &domain.Review{ListingID: recent.ListingID, UserID: uuid.New(), Rating: 4}
	require.NoError(t, db.Create(rev).Error)
	require.NoError(t, db.Model(rev).UpdateColumn("createdAt", reportNow.AddDate(0, 0, -2)).Error)

	inq := &domain.Inquiry{ListingID: recent.ListingID, SenderID: uuid.New(), Message: "still available?"}
	require.NoError(t, db.Create(inq).Error)
	require.NoError(t, db.Model(inq).UpdateColumn("createdAt", reportNow.AddDate(0, 0, -40)).Error)

	kpis, err := svc.Kpis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), kpis.TotalUsers)
	assert.Equal(t, int64(2), kpis.TotalListings)
	assert.Equal(t, int64(1), kpis.NewListings30)
	assert.Equal(t, int64(1), kpis.Reviews30)
	assert.Equal(t, int64(0), kpis.Inquiries30)
}

func TestSeries_ZeroFillsRange(t *testing.T) {
	svc, db := setupReports(t)
	createListingAt(t, db, reportNow.AddDate(0, 0, -2))
	createListingAt(t, db, reportNow.AddDate(0, 0, -2).Add(3*time.Hour))
	createListingAt(t, db, reportNow)

	from := dateOf(reportNow.AddDate(0, 0, -6))
	to := dateOf(reportNow)
	points, err := svc.Series(context.Background(), SeriesQuery{Entity: EntityListings, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, points, 7)

	byDate := make(map[string]int, len(points))
	for _, p := range points {
		byDate[p.Date] = p.Count
	}
	assert.Equal(t, 2, byDate[reportNow.AddDate(0, 0, -2).Format("2006-01-02")])
	assert.Equal(t, 1, byDate[reportNow.Format("2006-01-02")])
	assert.Equal(t, 0, byDate[reportNow.AddDate(0, 0, -4).Format("2006-01-02")])
}

func TestSeries_DaysBackDefault(t *testing.T) {
	svc, _ := setupReports(t)
	points, err := svc.Series(context.Background(), SeriesQuery{Entity: EntityUsers, Days: 6})
	require.NoError(t, err)
	assert.Len(t, points, 7)
}

func TestSeries_RevenueAlwaysZero(t *testing.T) {
	svc, db := setupReports(t)
	createListingAt(t, db, reportNow)

	points, err := svc.Series(context.Background(), SeriesQuery{Entity: EntityRevenue, Days: 3})
	require.NoError(t, err)
	for _, p := range points {
		assert.Equal(t, 0, p.Count)
	}
}

// Unknown entities count activity entries, same as asking for "activity".
func TestSeries_UnknownEntityFallsBackToActivity(t *testing.T) {
	svc, db := setupReports(t)
	entry := &domain.ActivityLog{Kind: domain.ActivityListingApprove}
	require.NoError(t, db.Create(entry).Error)
	require.NoError(t, db.Model(entry).UpdateColumn("createdAt", reportNow).Error)

	unknown, err := svc.Series(context.Background(), SeriesQuery{Entity: "bogus", Days: 2})
	require.NoError(t, err)
	activity, err := svc.Series(context.Background(), SeriesQuery{Entity: EntityActivity, Days: 2})
	require.NoError(t, err)
	assert.Equal(t, activity, unknown)
	assert.Equal(t, 1, unknown[len(unknown)-1].Count)
}

func TestMonthly_RollsUpByCalendarMonth(t *testing.T) {
	svc, db := setupReports(t)
	createListingAt(t, db, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
	createListingAt(t, db, time.Date(2026, 6, 25, 0, 0, 0, 0, time.UTC))
	createListingAt(t, db, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	points, err := svc.Monthly(context.Background(), MonthlyQuery{Entity: EntityListings, Months: 4})
	require.NoError(t, err)
	require.Len(t, points, 4)
	assert.Equal(t, "May", points[0].Label)
	assert.Equal(t, 0, points[0].Count)
	assert.Equal(t, "Jun", points[1].Label)
	assert.Equal(t, 2, points[1].Count)
	assert.Equal(t, "Jul", points[2].Label)
	assert.Equal(t, 0, points[2].Count)
	assert.Equal(t, "Aug", points[3].Label)
	assert.Equal(t, 1, points[3].Count)
}

func TestExportCSV_ListingsReport(t *testing.T) {
	svc, db := setupReports(t)
	l := createListingAt(t, db, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Model(l).Updates(map[string]interface{}{"title": `Room "A"; near mall`}).Error)
	createListingAt(t, db, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)) // outside month

	export, err := svc.ExportCSV(context.Background(), ReportListings, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, "report-listings-2026-08.csv", export.Filename)

	body := string(export.Data)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	require.Len(t, lines, 3) // header, one row, footer
	assert.Equal(t, "Listing ID;Title;Location;Price;Status;Rating;Reviews;Created At", lines[0])
	assert.Contains(t, lines[1], `"Room ""A""; near mall"`)
	assert.Contains(t, lines[2], "Total Listings;1")
}

func TestExportCSV_OverviewStacksSections(t *testing.T) {
	svc, db := setupReports(t)
	u := &domain.User{Fullname: "Maria Cruz", Email: "maria@t.com", PasswordHash: "x", Role: "tenant"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Model(u).UpdateColumn("createdAt", time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)).Error)

	export, err := svc.ExportCSV(context.Background(), ReportOverview, 2026, 8)
	require.NoError(t, err)
	body := string(export.Data)
	assert.True(t, strings.HasPrefix(body, "Users\n"))
	assert.Contains(t, body, "\nListings\n")
	assert.Contains(t, body, "\nReviews\n")
	assert.Contains(t, body, `"Maria Cruz"`)
	assert.Contains(t, body, "Total Reviews;0")
}

func TestExportCSV_ReviewsBreakdown(t *testing.T) {
	svc, db := setupReports(t)
	l := createListingAt(t, db, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	for _, rating := range []int{5, 4} {
		r := &domain.Review{ListingID: l.ListingID, UserID: uuid.New(), Rating: rating}
		require.NoError(t, db.Create(r).Error)
		require.NoError(t, db.Model(r).UpdateColumn("createdAt", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)).Error)
	}

	export, err := svc.ExportCSV(context.Background(), ReportReviews, 2026, 8)
	require.NoError(t, err)
	body := string(export.Data)
	assert.Contains(t, body, "Average Rating per Listing")
	assert.Contains(t, body, l.ListingID.String()+`;"Room";4.50;2`)
}

// Unknown report types degrade to the three-line summary.
func TestExportCSV_UnknownTypeFallsBackToSummary(t *testing.T) {
	svc, db := setupReports(t)
	createListingAt(t, db, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))

	export, err := svc.ExportCSV(context.Background(), "whatever", 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, "report-summary-2026-08.csv", export.Filename)
	assert.Equal(t, "Users;0\nListings;1\nRatings;0\n", string(export.Data))
}
