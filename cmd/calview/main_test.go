package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubdesk/internal/view"
)

// fakeServer mimics the login form flow and the weekly calendar API.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			w.Write([]byte(`<form><input type="hidden" name="gorilla.csrf.Token" value="tok-abc"></form>`))
		case "POST":
			if r.FormValue("gorilla.csrf.Token") != "tok-abc" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			if r.FormValue("user") != "admin" || r.FormValue("password") != "sekrit" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "clubdesk_session", Value: "sess-1", Path: "/"})
			http.Redirect(w, r, "/calendar", http.StatusSeeOther)
		}
	})
	mux.HandleFunc("/calendar", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("clubdesk_session"); err != nil || c.Value != "sess-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	})
	mux.HandleFunc("/api/calendar/weekly", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("clubdesk_session"); err != nil || c.Value != "sess-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"date":"2026-09-06","time":"18:00","duration":60,"title":"Judo","teacher":"Dana","color":"#3B82F6","enrolled_count":4,"classes_remaining":9}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin_CarriesSessionIntoClient(t *testing.T) {
	srv := fakeServer(t)
	ctx := context.Background()

	httpClient, err := login(ctx, srv.URL, "admin", "sekrit")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	v := view.New(view.LocaleEnglish, view.NewClient(srv.URL, httpClient))
	v.Navigator().SetAnchor(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC))
	if err := v.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	events := v.Events()
	if len(events) != 1 || events[0].Title != "Judo" {
		t.Errorf("events = %+v, want single Judo event", events)
	}
	if v.Grid() == "" {
		t.Error("grid not rendered")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := fakeServer(t)

	if _, err := login(context.Background(), srv.URL, "admin", "nope"); err == nil {
		t.Fatal("login succeeded with wrong password")
	}
}

func TestLogin_EmptyPassword(t *testing.T) {
	if _, err := login(context.Background(), "http://localhost:1", "admin", ""); err == nil {
		t.Fatal("login succeeded with empty password")
	}
}
