package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"clubdesk/internal/adapters/email"
	"clubdesk/internal/adapters/http/middleware"
	"clubdesk/internal/adapters/storage"
	coachStore "clubdesk/internal/adapters/storage/coach"
	courseStore "clubdesk/internal/adapters/storage/course"
	enrollmentStore "clubdesk/internal/adapters/storage/enrollment"
	meetingStore "clubdesk/internal/adapters/storage/meeting"
	paymentStore "clubdesk/internal/adapters/storage/payment"
	studentStore "clubdesk/internal/adapters/storage/student"
	"clubdesk/internal/view"
)

// Stores holds all storage dependencies.
type Stores struct {
	CourseStore     courseStore.Store
	StudentStore    studentStore.Store
	CoachStore      coachStore.Store
	EnrollmentStore enrollmentStore.Store
	PaymentStore    paymentStore.Store
	MeetingStore    meetingStore.Store
}

// AdminCredentials is the single admin login, with a bcrypt password hash.
type AdminCredentials struct {
	User         string
	PasswordHash string
}

// loadCSRFKey reads the CSRF secret from CLUBDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUBDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUBDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLUBDESK_ENV") == "production" {
		log.Fatal("CLUBDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CLUBDESK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Admin credentials (set by SetAdminCredentials)
var admin AdminCredentials

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Admin email for receipts and digests
var adminEmail string

// Calendar locale for the server-rendered pages
var pageLocale = view.LocaleEnglish

// Raw database handle, used only by the admin reset endpoint
var resetDB *storage.TimedDB

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, adminAddr string) {
	emailSender = sender
	adminEmail = adminAddr
}

// SetAdminCredentials sets the login accepted by the auth handlers.
func SetAdminCredentials(creds AdminCredentials) {
	admin = creds
}

// SetPageLocale sets the locale used by the server-rendered calendar pages.
func SetPageLocale(l view.Locale) {
	pageLocale = l
}

// SetResetDB provides the database handle for the admin reset endpoint.
func SetResetDB(db *storage.TimedDB) {
	resetDB = db
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CLUBDESK_ENV") == "production"

	mux := http.NewServeMux()
	if staticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
