package web

import (
	"bytes"
	"net/http"

	"shifremenlanding/internal/assets"
	"shifremenlanding/internal/landing"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type entryView struct {
	Label  string
	Name   string
	URL    string
	SizeMB int64
}

type pageView struct {
	Title    string
	Subtitle string
	Tag      string
	RepoURL  string
	Theme    landing.Theme
	Dark     bool
	Entries  []entryView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.load(r)

	view := pageView{
		Title:    "Shifremen",
		Subtitle: "Secure Password Manager",
		Tag:      page.Tag(),
		RepoURL:  "https://github.com/" + s.owner + "/" + s.repo,
		Theme:    page.Theme,
		Dark:     page.Theme.Dark(),
	}
	for _, e := range page.Entries() {
		view.Entries = append(view.Entries, entryView{
			Label:  e.Category.Label(),
			Name:   e.Name,
			URL:    e.BrowserDownloadURL,
			SizeMB: e.SizeMB,
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.tmpl", view); err != nil {
		s.log.Error("render index", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.views.WithLabelValues("index").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type assetJSON struct {
	Name               string          `json:"name"`
	Label              string          `json:"label"`
	Category           assets.Category `json:"category"`
	Size               int64           `json:"size"`
	SizeMB             int64           `json:"size_mb"`
	BrowserDownloadURL string          `json:"browser_download_url"`
}

type releaseJSON struct {
	TagName string      `json:"tag_name"`
	Assets  []assetJSON `json:"assets"`
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	page := s.load(r)

	out := releaseJSON{TagName: page.Tag(), Assets: []assetJSON{}}
	for _, e := range page.Entries() {
		out.Assets = append(out.Assets, assetJSON{
			Name:               e.Name,
			Label:              e.Category.Label(),
			Category:           e.Category,
			Size:               e.Size,
			SizeMB:             e.SizeMB,
			BrowserDownloadURL: e.BrowserDownloadURL,
		})
	}

	s.views.WithLabelValues("api").Inc()
	w.Header().Set("Content-Type", "application/json")
	if err := jsonAPI.NewEncoder(w).Encode(out); err != nil {
		s.log.Error("encode release", "err", err)
	}
}
