package page

import (
	"net/url"
	"sort"
	"strings"
)

// Page names the top-level screen encoded in the URL fragment.
type Page string

const (
	PageHome   Page = ""
	PageBuild  Page = "build"
	PageFind   Page = "find"
	PageSystem Page = "sys"
	PageCmdr   Page = "cmdr"
	PageFC     Page = "fc"
	PageAbout  Page = "about"
)

var knownPages = map[Page]bool{
	PageHome: true, PageBuild: true, PageFind: true, PageSystem: true,
	PageCmdr: true, PageFC: true, PageAbout: true,
}

// Known reports whether the page is one the application renders.
func (p Page) Known() bool {
	return knownPages[p]
}

// Route is the view state derived from a URL fragment such as
// "#build=x1y2&tab=markets". The first pair selects the page and its
// parameter; the rest are carried in Params.
type Route struct {
	Page   Page       `json:"page"`
	Param  string     `json:"param,omitempty"`
	Params url.Values `json:"params,omitempty"`
}

// Parse derives a route from a fragment, with or without the leading '#'.
// Unknown pages fall back to home.
func Parse(fragment string) Route {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if fragment == "" {
		return Route{Page: PageHome}
	}

	pairs := strings.Split(fragment, "&")
	name, param, _ := strings.Cut(pairs[0], "=")
	route := Route{Page: Page(strings.ToLower(unescape(name))), Param: unescape(param)}
	if !route.Page.Known() {
		return Route{Page: PageHome}
	}

	for _, pair := range pairs[1:] {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if route.Params == nil {
			route.Params = url.Values{}
		}
		route.Params.Add(unescape(k), unescape(v))
	}
	return route
}

// Get returns the first value of an extra parameter.
func (r Route) Get(key string) string {
	return r.Params.Get(key)
}

// Format renders the route back to a fragment. Extra parameters are written
// in key order so equal routes format identically.
func (r Route) Format() string {
	if r.Page == PageHome {
		return "#"
	}
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(string(r.Page))
	if r.Param != "" {
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(r.Param))
	}

	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range r.Params[k] {
			b.WriteByte('&')
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// Build is a shortcut for the route of a project page.
func Build(buildID string) Route {
	return Route{Page: PageBuild, Param: buildID}
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
