package nav

import (
	"path"
	"strings"
)

// Item is a top-level navigation entry.
type Item struct {
	Path        string
	Label       string
	RequireAuth bool
}

// RenderedItem is the view model sent to the client shell.
type RenderedItem struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Main is the storefront's primary navigation.
var Main = []Item{
	{Path: "/shop", Label: "Shop parts"},
	{Path: "/cart", Label: "Cart"},
	{Path: "/orders", Label: "My orders", RequireAuth: true},
	{Path: "/returns", Label: "Returns", RequireAuth: true},
	{Path: "/pages/delivery", Label: "Delivery"},
}

// Build renders the navigation for the current path, hiding entries that
// need a signed-in user.
func Build(currentPath string, signedIn bool) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		if it.RequireAuth && !signedIn {
			continue
		}
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Crumb is a breadcrumb entry.
type Crumb struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Breadcrumbs derives a trail from the current path using the labels in Main
// where they match, falling back to the path segment itself.
func Breadcrumbs(currentPath string) []Crumb {
	cleaned := path.Clean("/" + strings.TrimSpace(currentPath))
	if cleaned == "/" {
		return []Crumb{{Href: "/", Label: "Home", Active: true}}
	}
	crumbs := []Crumb{{Href: "/", Label: "Home"}}
	segments := strings.Split(strings.Trim(cleaned, "/"), "/")
	href := ""
	for i, seg := range segments {
		href += "/" + seg
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  labelFor(href, seg),
			Active: i == len(segments)-1,
		})
	}
	return crumbs
}

func labelFor(href, segment string) string {
	for _, it := range Main {
		if it.Path == href {
			return it.Label
		}
	}
	segment = strings.ReplaceAll(segment, "-", " ")
	if segment == "" {
		return segment
	}
	return strings.ToUpper(segment[:1]) + segment[1:]
}
