package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gosimple/slug"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// SlugFromPage derives the stable, filesystem-safe key for a page from its
// URL, falling back to its title. Two runs over the same logical page
// produce the same slug, which is what makes version lookup and movement
// tracking possible. Returns ErrNaming when neither source yields one.
func SlugFromPage(pageURL, title string) (string, error) {
	if s := slugFromURL(pageURL); s != "" {
		return s, nil
	}
	if s := slug.Make(title); s != "" {
		return s, nil
	}
	return "", fmt.Errorf("%w: empty URL and title", domain.ErrNaming)
}

// DomainLabel extracts a clean domain name from a URL for display purposes,
// e.g. "example.com" from "https://www.example.com:443/pricing".
// Falls back to the input when it does not parse as a URL.
func DomainLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func slugFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")

	switch {
	case host == "" && path == "":
		return ""
	case path == "":
		return slug.Make(host)
	case host == "":
		return slug.Make(path)
	default:
		return slug.Make(host) + "-" + slug.Make(path)
	}
}
