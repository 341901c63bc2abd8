package router

import (
	activitysvc "roomstay-backend/internal/application/activity"
	authsvc "roomstay-backend/internal/application/auth"
	emailsvc "roomstay-backend/internal/application/emails"
	inquirysvc "roomstay-backend/internal/application/inquiries"
	lifecyclesvc "roomstay-backend/internal/application/lifecycle"
	listsvc "roomstay-backend/internal/application/listings"
	"roomstay-backend/internal/application/notify"
	reportsvc "roomstay-backend/internal/application/reports"
	reviewsvc "roomstay-backend/internal/application/reviews"
	usersvc "roomstay-backend/internal/application/user"
	"roomstay-backend/internal/config"
	"roomstay-backend/internal/infrastructure/database"
	adminhandler "roomstay-backend/internal/interfaces/handlers/admin"
	authhandler "roomstay-backend/internal/interfaces/handlers/auth"
	healthhandler "roomstay-backend/internal/interfaces/handlers/health"
	inquiryhandler "roomstay-backend/internal/interfaces/handlers/inquiries"
	listhandler "roomstay-backend/internal/interfaces/handlers/listings"
	reporthandler "roomstay-backend/internal/interfaces/handlers/reports"
	reviewhandler "roomstay-backend/internal/interfaces/handlers/reviews"
	userhandler "roomstay-backend/internal/interfaces/handlers/user"
	"roomstay-backend/internal/middleware"
	"roomstay-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp wires middleware, services and routes. Returns the app plus the
// opened DB and Redis handles so the caller can close them.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	hh := &healthhandler.Handlers{Rdb: rdb, DB: db}
	app.Get("/health/json", hh.JSON)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil && rdb != nil {
		// Notifications (optional; empty SENDINBLUE_API_KEY means no emails go out)
		var gateway notify.Gateway
		if cfg.SendinblueAPIKey != "" {
			gateway = &emailsvc.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
		}

		us := &usersvc.Service{DB: db}
		uh := &userhandler.Handlers{Service: us}
		// create-user is public (registration)
		app.Post("/api/v1/users/create-user", uh.CreateUser)

		lcs := &lifecyclesvc.Service{DB: db, Gateway: gateway, BaseURL: cfg.ListingBaseURL}
		ls := &listsvc.Service{DB: db, Lifecycle: lcs}
		lh := &listhandler.Handlers{Service: ls, Lifecycle: lcs}
		app.Get("/api/v1/listings/get-approved-listings", lh.GetApprovedListings)
		app.Get("/api/v1/listings/get-listing/:listing_id", lh.GetListing)
		lg := app.Group("/api/v1/listings", middleware.RequireAuth())
		lg.Post("/create-listing", middleware.AuthorizePermission(constants.CreateListing), lh.CreateListing)
		lg.Get("/get-my-listings", lh.GetMyListings)
		lg.Post("/renew-listing", middleware.AuthorizePermission(constants.RenewListing), lh.RenewListing)
		lg.Delete("/delete-listing/:listing_id", middleware.AuthorizePermission(constants.DeleteListing), lh.DeleteListing)

		as := &activitysvc.Service{DB: db}
		adh := &adminhandler.Handlers{Listings: ls, Lifecycle: lcs, Activity: as}
		ag := app.Group("/api/v1/admin", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ModerateListing))
		ag.Get("/pending-listings", adh.PendingListings)
		ag.Post("/approve-listing", adh.ApproveListing)
		ag.Post("/reject-listing", adh.RejectListing)
		ag.Get("/recent-activity", adh.RecentActivity)
		ag.Get("/listing-activity/:listing_id", adh.ListingActivity)

		rvs := &reviewsvc.Service{DB: db}
		rvh := &reviewhandler.Handlers{Service: rvs}
		app.Get("/api/v1/reviews/get-listing-reviews/:listing_id", rvh.ListingReviews)
		rvg := app.Group("/api/v1/reviews", middleware.RequireAuth())
		rvg.Post("/upsert-review", middleware.AuthorizePermission(constants.SubmitReview), rvh.UpsertReview)
		rvg.Delete("/delete-review", rvh.DeleteReview)

		iqs := &inquirysvc.Service{DB: db, Gateway: gateway, BaseURL: cfg.ListingBaseURL}
		iqh := &inquiryhandler.Handlers{Service: iqs, Listings: ls}
		iqg := app.Group("/api/v1/inquiries", middleware.RequireAuth())
		iqg.Post("/create-inquiry", middleware.AuthorizePermission(constants.CreateInquiry), iqh.CreateInquiry)
		iqg.Get("/get-listing-inquiries/:listing_id", iqh.ListingInquiries)

		rps := &reportsvc.Service{DB: db}
		rph := &reporthandler.Handlers{Service: rps}
		rpg := app.Group("/api/v1/reports", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ViewReports))
		rpg.Get("/kpis", rph.Kpis)
		rpg.Get("/series", rph.Series)
		rpg.Get("/monthly", rph.Monthly)
		rpg.Get("/export-csv", middleware.AuthorizePermission(constants.ExportReports), rph.ExportCSV)
	}

	return app, db, rdb, nil
}
