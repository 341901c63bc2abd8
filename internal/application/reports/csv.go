package reports

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"roomstay-backend/internal/domain"
)

// CSV rendering is a pure data-processing concern: (rows) -> bytes, no
// transport involved. Fields are separated by ";" and free-text columns are
// quoted with internal quote-doubling so titles, names and comments stay
// well-formed when they contain separators, quotes or newlines.

const csvSep = ";"

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func row(fields ...string) string {
	return strings.Join(fields, csvSep) + "\n"
}

func fmtMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fmtDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func renderUsersSection(b *strings.Builder, users []domain.User) {
	b.WriteString(row("User ID", "Fullname", "Email", "Role", "Created At"))
	for _, u := range users {
		b.WriteString(row(u.UserID.String(), quote(u.Fullname), quote(u.Email), u.Role, fmtDate(u.CreatedAt)))
	}
	b.WriteString(row("Total Users", strconv.Itoa(len(users))))
}

func renderListingsSection(b *strings.Builder, listings []domain.Listing) {
	b.WriteString(row("Listing ID", "Title", "Location", "Price", "Status", "Rating", "Reviews", "Created At"))
	var priceSum float64
	for _, l := range listings {
		priceSum += l.Price
		b.WriteString(row(
			l.ListingID.String(), quote(l.Title), quote(l.Location),
			fmtMoney(l.Price), l.Status, fmtMoney(l.Rating),
			strconv.Itoa(l.ReviewCount), fmtDate(l.CreatedAt),
		))
	}
	avg := 0.0
	if len(listings) > 0 {
		avg = priceSum / float64(len(listings))
	}
	b.WriteString(row("Total Listings", strconv.Itoa(len(listings)), "Average Price", fmtMoney(avg)))
}

func renderReviewsSection(b *strings.Builder, revs []domain.Review) {
	b.WriteString(row("Review ID", "Listing ID", "User ID", "Rating", "Comment", "Created At"))
	var ratingSum int
	for _, r := range revs {
		ratingSum += r.Rating
		b.WriteString(row(
			r.ReviewID.String(), r.ListingID.String(), r.UserID.String(),
			strconv.Itoa(r.Rating), quote(r.Comment), fmtDate(r.CreatedAt),
		))
	}
	avg := 0.0
	if len(revs) > 0 {
		avg = float64(ratingSum) / float64(len(revs))
	}
	b.WriteString(row("Total Reviews", strconv.Itoa(len(revs)), "Average Rating", fmtMoney(avg)))
}

// renderOverviewCSV stacks the three sub-tables into one report.
func renderOverviewCSV(users []domain.User, listings []domain.Listing, revs []domain.Review) []byte {
	var b strings.Builder
	b.WriteString(row("Users"))
	renderUsersSection(&b, users)
	b.WriteString("\n")
	b.WriteString(row("Listings"))
	renderListingsSection(&b, listings)
	b.WriteString("\n")
	b.WriteString(row("Reviews"))
	renderReviewsSection(&b, revs)
	return []byte(b.String())
}

func renderUsersCSV(users []domain.User) []byte {
	var b strings.Builder
	renderUsersSection(&b, users)
	return []byte(b.String())
}

func renderListingsCSV(listings []domain.Listing) []byte {
	var b strings.Builder
	renderListingsSection(&b, listings)
	return []byte(b.String())
}

// renderReviewsCSV adds a per-listing average-rating breakdown under the
// review rows.
func renderReviewsCSV(revs []domain.Review, titles map[string]string) []byte {
	var b strings.Builder
	renderReviewsSection(&b, revs)

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range revs {
		id := r.ListingID.String()
		sums[id] += r.Rating
		counts[id]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	b.WriteString("\n")
	b.WriteString(row("Average Rating per Listing"))
	b.WriteString(row("Listing ID", "Title", "Average Rating", "Review Count"))
	for _, id := range ids {
		avg := float64(sums[id]) / float64(counts[id])
		b.WriteString(row(id, quote(titles[id]), fmtMoney(avg), strconv.Itoa(counts[id])))
	}
	return []byte(b.String())
}

// renderSummaryCSV is the fallback for unrecognized report types.
func renderSummaryCSV(users, listings, ratings int) []byte {
	var b strings.Builder
	b.WriteString(row("Users", strconv.Itoa(users)))
	b.WriteString(row("Listings", strconv.Itoa(listings)))
	b.WriteString(row("Ratings", strconv.Itoa(ratings)))
	return []byte(b.String())
}
