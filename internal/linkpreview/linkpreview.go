// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package linkpreview reads OpenGraph metadata from a product page so a
// widget card can be filled from its destination URL.
package linkpreview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"

	"autoblog/internal/models"
)

const (
	userAgent   = "Mozilla/5.0 (compatible; AutoblogPreview/1.0)"
	maxBodySize = 2 << 20
)

var (
	// ErrUnsupportedURL is returned for anything but an absolute http(s) URL.
	ErrUnsupportedURL = errors.New("linkpreview: unsupported url")

	// ErrBlockedAddress is returned when a page, or a redirect it issues,
	// resolves to a loopback, private, link-local or otherwise non-public
	// address.
	ErrBlockedAddress = errors.New("linkpreview: address not allowed")
)

// sharedAddressSpace is the carrier-grade NAT range, which netip does not
// classify as private.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// Preview is the metadata found on a page. Empty fields were not present.
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SiteName    string `json:"site_name"`
	Kind        string `json:"kind"`
}

// Cache stores serialized previews by page URL. cache.PreviewCache
// satisfies it.
type Cache interface {
	Get(ctx context.Context, pageURL string) ([]byte, bool)
	Set(ctx context.Context, pageURL string, payload []byte)
	Invalidate(ctx context.Context, pageURL string)
}

// Fetcher downloads and parses pages.
type Fetcher struct {
	client       *http.Client
	cache        Cache
	allowPrivate bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// AllowPrivateNetworks lets the Fetcher reach loopback and private
// addresses. Only tests against local servers should use it.
func AllowPrivateNetworks() Option {
	return func(f *Fetcher) { f.allowPrivate = true }
}

// NewFetcher returns a Fetcher with a bounded request timeout. cache may
// be nil. Connections to non-public addresses are refused at dial time,
// after DNS resolution, so redirects are checked as well.
func NewFetcher(cache Cache, opts ...Option) *Fetcher {
	f := &Fetcher{cache: cache}
	for _, opt := range opts {
		opt(f)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	if !f.allowPrivate {
		dialer.Control = publicOnly
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	f.client = &http.Client{Timeout: 10 * time.Second, Transport: transport}
	return f
}

// publicOnly is a net.Dialer Control hook that rejects non-public
// destinations. address is the resolved ip:port.
func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPublic(ip netip.Addr) bool {
	ip = ip.Unmap()
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	case ip.Is4() && (ip.As4()[0] == 0 || sharedAddressSpace.Contains(ip)):
		return false
	}
	return true
}

// Fetch retrieves rawURL and extracts its preview, consulting the cache
// first when one is configured.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Preview, error) {
	u, err := pageURL(rawURL)
	if err != nil {
		return Preview{}, err
	}
	key := u.String()

	if f.cache != nil {
		if payload, ok := f.cache.Get(ctx, key); ok {
			var p Preview
			if json.Unmarshal(payload, &p) == nil {
				return p, nil
			}
		}
	}

	p, err := f.fetch(ctx, u)
	if err != nil {
		return Preview{}, err
	}

	if f.cache != nil {
		if payload, err := json.Marshal(p); err == nil {
			f.cache.Set(ctx, key, payload)
		}
	}
	return p, nil
}

// Refresh drops any cached preview for rawURL and fetches it again.
func (f *Fetcher) Refresh(ctx context.Context, rawURL string) (Preview, error) {
	u, err := pageURL(rawURL)
	if err != nil {
		return Preview{}, err
	}
	if f.cache != nil {
		f.cache.Invalidate(ctx, u.String())
	}
	return f.Fetch(ctx, rawURL)
}

// pageURL accepts only absolute http(s) URLs.
func pageURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	return u, nil
}

func (f *Fetcher) fetch(ctx context.Context, u *url.URL) (Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Preview{}, fmt.Errorf("linkpreview: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return Preview{}, fmt.Errorf("linkpreview: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Preview{}, fmt.Errorf("linkpreview: fetch %s: status %d", u.Host, resp.StatusCode)
	}

	return Parse(io.LimitReader(resp.Body, maxBodySize), resp.Request.URL)
}

// Parse extracts a preview from an HTML document. base resolves relative
// image URLs and may be nil.
func Parse(r io.Reader, base *url.URL) (Preview, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Preview{}, fmt.Errorf("linkpreview: parse: %w", err)
	}

	p := Preview{
		Title:       meta(doc, "og:title"),
		Description: meta(doc, "og:description"),
		ImageURL:    meta(doc, "og:image"),
		SiteName:    meta(doc, "og:site_name"),
		Kind:        meta(doc, "og:type"),
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	}
	if p.Description == "" {
		p.Description = meta(doc, "description")
	}
	if p.ImageURL != "" && base != nil {
		if ref, err := url.Parse(p.ImageURL); err == nil {
			p.ImageURL = base.ResolveReference(ref).String()
		}
	}
	return p, nil
}

// meta returns the content of the first <meta> whose property or name is key.
func meta(doc *goquery.Document, key string) string {
	var out string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		prop, _ := s.Attr("property")
		if prop == "" {
			prop, _ = s.Attr("name")
		}
		if !strings.EqualFold(prop, key) {
			return true
		}
		content, _ := s.Attr("content")
		out = strings.TrimSpace(content)
		return out == ""
	})
	return out
}

// Apply copies the non-empty preview fields onto rec. The destination URL
// and any label the user set are left untouched.
func (p Preview) Apply(rec *models.ProductRecord) {
	if p.Title != "" {
		rec.Title = p.Title
	}
	if p.Description != "" {
		rec.Description = p.Description
	}
	if p.ImageURL != "" {
		rec.ImageURL = p.ImageURL
	}
	if p.SiteName != "" {
		rec.SiteName = p.SiteName
	}
	if p.Kind != "" {
		rec.Kind = p.Kind
	}
}
