package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"golang.org/x/crypto/bcrypt"

	"clubdesk/internal/adapters/http/middleware"
)

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>ClubDesk — Sign in</title>
<link rel="stylesheet" href="/static/app.css"></head>
<body class="login-page">
<form class="login-form" method="POST" action="/login">
  {{.CSRFField}}
  {{if .Error}}<p class="login-error">{{.Error}}</p>{{end}}
  <h1>ClubDesk</h1>
  <label>User <input type="text" name="user" autofocus></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>`))

type loginPage struct {
	CSRFField template.HTML
	Error     string
}

// handleLogin handles GET /login (form) and POST /login (submit).
// POST: on success sets the session cookie and redirects to /calendar
func handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		renderLogin(w, r, "")
	case "POST":
		user := strings.TrimSpace(r.FormValue("user"))
		password := r.FormValue("password")

		if user != admin.User ||
			bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			slog.Warn("login_failed", "user", user, "ip", r.RemoteAddr)
			w.WriteHeader(http.StatusUnauthorized)
			renderLogin(w, r, "Wrong user or password")
			return
		}

		token := sessions.Create(user)
		middleware.SetSessionCookie(w, token)
		slog.Info("auth_event", "event", "login", "user", user)
		http.Redirect(w, r, "/calendar", http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	loginTemplate.Execute(w, loginPage{
		CSRFField: csrf.TemplateField(r),
		Error:     errMsg,
	})
}

// handleLogout handles POST /logout.
// POST: session is removed and the cookie cleared
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
