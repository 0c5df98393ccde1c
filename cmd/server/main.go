package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"

	emailPkg "clubdesk/internal/adapters/email"
	web "clubdesk/internal/adapters/http"
	"clubdesk/internal/adapters/storage"
	coachStore "clubdesk/internal/adapters/storage/coach"
	courseStore "clubdesk/internal/adapters/storage/course"
	enrollmentStore "clubdesk/internal/adapters/storage/enrollment"
	meetingStore "clubdesk/internal/adapters/storage/meeting"
	paymentStore "clubdesk/internal/adapters/storage/payment"
	studentStore "clubdesk/internal/adapters/storage/student"
	"clubdesk/internal/application/orchestrators"
	"clubdesk/internal/config"
	"clubdesk/internal/view"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "clubdesk.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		CourseStore:     courseStore.NewSQLiteStore(timedDB),
		StudentStore:    studentStore.NewSQLiteStore(timedDB),
		CoachStore:      coachStore.NewSQLiteStore(timedDB),
		EnrollmentStore: enrollmentStore.NewSQLiteStore(timedDB),
		PaymentStore:    paymentStore.NewSQLiteStore(timedDB),
		MeetingStore:    meetingStore.NewSQLiteStore(timedDB),
	}

	web.SetAdminCredentials(web.AdminCredentials{
		User:         cfg.Admin.User,
		PasswordHash: cfg.Admin.PasswordHash,
	})
	web.SetPageLocale(view.Locale(cfg.Locale))
	web.SetResetDB(timedDB)

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.Email.APIKey != "" {
		sender = emailPkg.NewResendSender(cfg.Email.APIKey, cfg.Email.From)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		log.Println("Email sender configured (noop — set CLUBDESK_RESEND_KEY for real delivery)")
	}
	web.SetEmailSender(sender, cfg.Email.AdminEmail)

	// Weekly revenue digest
	if cfg.DigestCron != "" && cfg.Email.AdminEmail != "" {
		digestDeps := orchestrators.WeeklyDigestDeps{
			PaymentStore: stores.PaymentStore,
			CourseStore:  stores.CourseStore,
			Sender:       sender,
		}
		runner := cron.New()
		_, err := runner.AddFunc(cfg.DigestCron, func() {
			input := orchestrators.WeeklyDigestInput{AdminEmail: cfg.Email.AdminEmail}
			if err := orchestrators.ExecuteWeeklyDigest(context.Background(), input, digestDeps); err != nil {
				log.Printf("weekly digest failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("invalid digest_cron %q: %v", cfg.DigestCron, err)
		}
		runner.Start()
		defer runner.Stop()
		log.Printf("Weekly digest scheduled (%s)", cfg.DigestCron)
	}

	mux := web.NewMux(cfg.StaticDir, stores)

	log.Printf("ClubDesk %s starting on %s (locale=%s)", version, cfg.Listen, cfg.Locale)
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
