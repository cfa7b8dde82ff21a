package view

import (
	"net/url"
	"strings"
)

type NavItem struct {
	Name   string
	Href   string
	Active bool
}

var navItems = []NavItem{
	{Name: "Home", Href: "/"},
	{Name: "Browse Jobs", Href: "/jobs"},
	{Name: "My Dashboard", Href: "/candidates"},
	{Name: "For Employers", Href: "/employers"},
	{Name: "About", Href: "/about"},
	{Name: "Contact", Href: "/contact"},
}

// IsActive reports whether href is the current page or one of its children.
func IsActive(path, href string) bool {
	return path == href || strings.HasPrefix(path, href+"/")
}

// NavItems returns the header links with the active one marked.
func NavItems(path string) []NavItem {
	items := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = IsActive(path, item.Href)
		items[i] = item
	}
	return items
}

// LoginURL sends the visitor to the login page and back to path afterwards.
func LoginURL(path string) string {
	return "/login?redirect=" + url.QueryEscape(path)
}

// SafeRedirect keeps post-login redirects on this site.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return "/"
	}
	u, err := url.Parse(target)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return target
}
