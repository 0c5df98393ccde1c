// Command calview renders the club calendar in a terminal. It signs in
// against a running server, fetches the requested range over the JSON API
// and prints either an event listing or the rendered HTML grid.
//
// The password is read from CLUBDESK_PASSWORD to keep it out of shell
// history and process listings.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"clubdesk/internal/view"
)

var csrfTokenPattern = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	user := flag.String("user", "admin", "admin user")
	mode := flag.String("mode", "week", "view mode: week or day")
	date := flag.String("date", "", "anchor date (YYYY-MM-DD), defaults to today")
	locale := flag.String("locale", "en", "display locale: en or he")
	html := flag.Bool("html", false, "print the rendered HTML grid instead of a listing")
	flag.Parse()

	if err := run(*baseURL, *user, *mode, *date, view.Locale(*locale), *html); err != nil {
		fmt.Fprintln(os.Stderr, "calview:", err)
		os.Exit(1)
	}
}

func run(baseURL, user, mode, date string, locale view.Locale, html bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpClient, err := login(ctx, baseURL, user, os.Getenv("CLUBDESK_PASSWORD"))
	if err != nil {
		return err
	}

	v := view.New(locale, view.NewClient(baseURL, httpClient))
	if mode != string(view.ModeWeek) {
		if err := v.Navigator().SwitchMode(view.Mode(mode)); err != nil {
			return err
		}
	}
	if date != "" {
		anchor, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("bad -date: %w", err)
		}
		v.Navigator().SetAnchor(anchor)
	}
	if err := v.Refresh(ctx); err != nil {
		return err
	}

	if html {
		fmt.Println(v.Grid())
		return nil
	}

	fmt.Println(v.MonthHeader())
	events := v.Events()
	if len(events) == 0 {
		fmt.Println("(no events)")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%s %s  %-24s %s  enrolled %d, %d left\n",
			e.Date, e.Time, e.Title, e.Teacher, e.EnrolledCount, e.ClassesRemaining)
	}
	return nil
}

// login signs in through the regular form flow: fetch /login for the CSRF
// token, then submit the credentials. The returned client carries the
// session cookie in its jar.
func login(ctx context.Context, baseURL, user, password string) (*http.Client, error) {
	if password == "" {
		return nil, fmt.Errorf("CLUBDESK_PASSWORD is not set")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Jar: jar, Timeout: 15 * time.Second}

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"/login", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch login form: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	m := csrfTokenPattern.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("no CSRF token in login form")
	}

	form := url.Values{
		"gorilla.csrf.Token": {string(m[1])},
		"user":               {user},
		"password":           {password},
	}
	req, err = http.NewRequestWithContext(ctx, "POST", baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit login: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("wrong user or password")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login returned %s", resp.Status)
	}
	return client, nil
}
