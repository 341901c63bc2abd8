package reports

import (
	"context"
	"fmt"
	"time"

	"roomstay-backend/internal/domain"

	"gorm.io/gorm"
)

// Report entity selectors. Anything else falls back to counting activity-log
// entries: this aggregator feeds dashboard charts that should degrade to a
// safe default instead of erroring on a typo'd filter.
const (
	EntityUsers    = "users"
	EntityListings = "listings"
	EntityReviews  = "reviews"
	EntityRevenue  = "revenue"
	EntityActivity = "activity"
)

const defaultSeriesDays = 180
const defaultRollupMonths = 6

// Service computes KPI counts, time-bucketed series and CSV exports over
// Users/Listings/Reviews/Inquiries/ActivityLogs. Read-only; all bucketing is
// by UTC calendar date.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time // nil = time.Now
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Kpis are the point-in-time dashboard counts.
type Kpis struct {
	TotalUsers    int64 `json:"total_users"`
	TotalListings int64 `json:"total_listings"`
	NewListings30 int64 `json:"new_listings_30"`
	Reviews30     int64 `json:"reviews_30"`
	Inquiries30   int64 `json:"inquiries_30"`
}

func (s *Service) Kpis(ctx context.Context) (*Kpis, error) {
	since := s.now().AddDate(0, 0, -30)
	out := &Kpis{}
	db := s.DB.WithContext(ctx)
	if err := db.Model(&domain.User{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Listing{}).Count(&out.TotalListings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Listing{}).Where(`"createdAt" >= ?`, since).Count(&out.NewListings30).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Review{}).Where(`"createdAt" >= ?`, since).Count(&out.Reviews30).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Inquiry{}).Where(`"createdAt" >= ?`, since).Count(&out.Inquiries30).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SeriesPoint is one calendar day and its count.
type SeriesPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD (UTC)
	Count int    `json:"count"`
}

// SeriesQuery selects an entity and a date range. Explicit From/To win;
// otherwise the range is Days back from now (default 180).
type SeriesQuery struct {
	Entity string
	From   *time.Time
	To     *time.Time
	Days   int
}

// Series returns one point per calendar day in the resolved range, inclusive,
// zero-filling days with no records so charts always get a contiguous x-axis.
func (s *Service) Series(ctx context.Context, q SeriesQuery) ([]SeriesPoint, error) {
	to := dateOf(s.now())
	if q.To != nil {
		to = dateOf(*q.To)
	}
	from := to.AddDate(0, 0, -defaultSeriesDays)
	if q.From != nil {
		from = dateOf(*q.From)
	} else if q.Days > 0 {
		from = to.AddDate(0, 0, -q.Days)
	}
	if from.After(to) {
		from = to
	}

	times, err := s.creationTimes(ctx, q.Entity, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int, len(times))
	for _, t := range times {
		byDay[t.UTC().Format("2006-01-02")]++
	}

	var out []SeriesPoint
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		out = append(out, SeriesPoint{Date: key, Count: byDay[key]})
	}
	return out, nil
}

// MonthlyPoint is one calendar month and its count.
type MonthlyPoint struct {
	Label string `json:"label"` // short month name
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Count int    `json:"count"`
}

// MonthlyQuery selects an entity and a month range. Explicit From/To win;
// otherwise the range is Months back from now (default 6), anchored to the
// first of the month.
type MonthlyQuery struct {
	Entity string
	From   *time.Time
	To     *time.Time
	Months int
}

// Monthly returns one point per calendar month in the resolved range,
// inclusive, with the same zero-fill and fallback rules as Series.
func (s *Service) Monthly(ctx context.Context, q MonthlyQuery) ([]MonthlyPoint, error) {
	to := monthOf(s.now())
	if q.To != nil {
		to = monthOf(*q.To)
	}
	months := q.Months
	if months <= 0 {
		months = defaultRollupMonths
	}
	from := to.AddDate(0, -(months - 1), 0)
	if q.From != nil {
		from = monthOf(*q.From)
	}
	if from.After(to) {
		from = to
	}

	times, err := s.creationTimes(ctx, q.Entity, from, to.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	byMonth := make(map[int]int, len(times))
	for _, t := range times {
		u := t.UTC()
		byMonth[u.Year()*100+int(u.Month())]++
	}

	var out []MonthlyPoint
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		out = append(out, MonthlyPoint{
			Label: m.Month().String()[:3],
			Year:  m.Year(),
			Month: int(m.Month()),
			Count: byMonth[m.Year()*100+int(m.Month())],
		})
	}
	return out, nil
}

// creationTimes fetches creation timestamps for the entity in [from, until).
// Revenue has no backing ledger and always yields an empty set (documented
// stub); unknown entities count generic activity entries.
func (s *Service) creationTimes(ctx context.Context, entity string, from, until time.Time) ([]time.Time, error) {
	var model interface{}
	switch entity {
	case EntityUsers:
		model = &domain.User{}
	case EntityListings:
		model = &domain.Listing{}
	case EntityReviews:
		model = &domain.Review{}
	case EntityRevenue:
		return nil, nil
	default:
		model = &domain.ActivityLog{}
	}
	var times []time.Time
	if err := s.DB.WithContext(ctx).Model(model).
		Where(`"createdAt" >= ? AND "createdAt" < ?`, from, until).
		Pluck("createdAt", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// Export is a rendered CSV report.
type Export struct {
	Filename string
	Data     []byte
}

// Report types for ExportCSV. Unknown types fall back to a three-line summary.
const (
	ReportOverview = "overview"
	ReportUsers    = "users"
	ReportListings = "listings"
	ReportReviews  = "reviews"
)

// ExportCSV renders the month-scoped report for (year, month). Rendering is a
// pure function over the fetched rows (csv.go); this method only resolves the
// range and loads data.
func (s *Service) ExportCSV(ctx context.Context, reportType string, year, month int) (*Export, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	db := s.DB.WithContext(ctx)

	var data []byte
	name := reportType
	switch reportType {
	case ReportOverview:
		users, listings, revs, err := s.monthRows(ctx, start, end)
		if err != nil {
			return nil, err
		}
		data = renderOverviewCSV(users, listings, revs)
	case ReportUsers:
		var users []domain.User
		if err := db.Where(`"createdAt" >= ? AND "createdAt" < ?`, start, end).Order(`"createdAt" ASC`).Find(&users).Error; err != nil {
			return nil, err
		}
		data = renderUsersCSV(users)
	case ReportListings:
		var listings []domain.Listing
		if err := db.Where(`"createdAt" >= ? AND "createdAt" < ?`, start, end).Order(`"createdAt" ASC`).Find(&listings).Error; err != nil {
			return nil, err
		}
		data = renderListingsCSV(listings)
	case ReportReviews:
		var revs []domain.Review
		if err := db.Where(`"createdAt" >= ? AND "createdAt" < ?`, start, end).Order(`"createdAt" ASC`).Find(&revs).Error; err != nil {
			return nil, err
		}
		titles, err := s.listingTitles(ctx, revs)
		if err != nil {
			return nil, err
		}
		data = renderReviewsCSV(revs, titles)
	default:
		users, listings, revs, err := s.monthRows(ctx, start, end)
		if err != nil {
			return nil, err
		}
		data = renderSummaryCSV(len(users), len(listings), len(revs))
		name = "summary"
	}

	return &Export{
		Filename: fmt.Sprintf("report-%s-%04d-%02d.csv", name, year, month),
		Data:     data,
	}, nil
}

func (s *Service) monthRows(ctx context.Context, start, end time.Time) ([]domain.User, []domain.Listing, []domain.Review, error) {
	db := s.DB.WithContext(ctx)
	var users []domain.User
	if err := db.Where(`"createdAt" >= ? AND "createdAt" < ?`, start, end).Order(`"createdAt" ASC`).Find(&users).Error; err != nil {
		return nil, nil, nil, err
	}
	var listings []domain.Listing
	if err := db.Where(`"createdAt" >= ? AND "createdAt" < ?`, start, end).Order(`"createdAt" ASC`).Find(&listings).Error; err != nil {
		return nil, nil, nil, err
	}
	var revs []domain.Review
	if err := db.Where(`"createdAt" >= ? AND "createdAt" < ?`, start, end).Order(`"createdAt" ASC`).Find(&revs).Error; err != nil {
		return nil, nil, nil, err
	}
	return users, listings, revs, nil
}

// listingTitles resolves titles for the listings referenced by the reviews
// (for the per-listing breakdown in the reviews report).
func (s *Service) listingTitles(ctx context.Context, revs []domain.Review) (map[string]string, error) {
	ids := make([]string, 0, len(revs))
	seen := make(map[string]bool, len(revs))
	for _, r := range revs {
		id := r.ListingID.String()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, err
	}
	for _, l := range listings {
		titles[l.ListingID.String()] = l.Title
	}
	return titles, nil
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func monthOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
