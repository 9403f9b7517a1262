// Package vplantest serves fake timetable pages for tests.
package vplantest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Page describes one fake page, cell and info values are written into the
// markup as-is so they may contain entities like &nbsp;.
type Page struct {
	Token string
	Day   string
	Info  string
	Rows  [][]string
	// OmitNavigation leaves out the navigation button.
	OmitNavigation bool
}

func (p Page) Render() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><title>Vertretungsplan</title></head><body>\n")
	if !p.OmitNavigation {
		fmt.Fprintf(&b, "<div class=\"nav\"><button class=\"nav-right-button\" onclick=\"%s\">&gt;</button></div>\n", p.Token)
	}
	if p.Day != "" {
		fmt.Fprintf(&b, "<h1>\n%s\n</h1>\n", p.Day)
	}
	if p.Info != "" {
		fmt.Fprintf(&b, "<div class=\"callout\">\n%s\n</div>\n", p.Info)
	}
	b.WriteString("<table>\n<thead><tr><th>Klasse</th><th>Stunde</th><th>Fach</th><th>Raum</th><th>Lehrer</th><th>Art</th><th>Info</th></tr></thead>\n<tbody>\n")
	for _, row := range p.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>\n%s\n</td>", cell)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</body></html>\n")
	return b.String()
}

const (
	Username = "schueler"
	Password = "geheim"
)

// Site is an httptest server behind basic auth serving pages at
// /subst_001.htm, /subst_002.htm, ... and 404 for anything past the last.
type Site struct {
	Server *httptest.Server

	pages   []string
	lock    sync.Mutex
	fetches []int
}

func NewSite(pages ...Page) *Site {
	rendered := make([]string, len(pages))
	for i, p := range pages {
		rendered[i] = p.Render()
	}
	return NewRawSite(rendered...)
}

func NewRawSite(markup ...string) *Site {
	s := &Site{pages: markup}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok || username != Username || password != Password {
		w.Header().Set("WWW-Authenticate", `Basic realm="vplan"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var idx int
	_, err := fmt.Sscanf(r.URL.Path, "/subst_%03d.htm", &idx)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.lock.Lock()
	s.fetches = append(s.fetches, idx)
	s.lock.Unlock()

	if idx < 1 || idx > len(s.pages) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.pages[idx-1])
}

// PageUrl is the page url template for vplan.ClientOptions.
func (s *Site) PageUrl() string {
	return s.Server.URL + "/subst_{page3}.htm"
}

// Fetches returns the page indices requested so far, in order.
func (s *Site) Fetches() []int {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make([]int, len(s.fetches))
	copy(out, s.fetches)
	return out
}

func (s *Site) Close() {
	s.Server.Close()
}
