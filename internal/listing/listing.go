package listing

import (
	"fmt"
	"strings"
)

// Element identifies one scored text field of a store listing.
type Element string

const (
	ElementTitle       Element = "title"
	ElementSubtitle    Element = "subtitle"
	ElementDescription Element = "description"
)

// Elements returns the scored elements in evaluation order.
func Elements() []Element {
	return []Element{ElementTitle, ElementSubtitle, ElementDescription}
}

// Platform identifies the store a listing is published on.
// Character limits differ per platform and element.
type Platform string

const (
	PlatformAppStore  Platform = "app_store"
	PlatformPlayStore Platform = "play_store"
)

// CharLimit returns the platform's character limit for an element.
// Unknown platforms fall back to App Store limits.
func CharLimit(p Platform, el Element) int {
	switch el {
	case ElementTitle:
		return 30
	case ElementSubtitle:
		if p == PlatformPlayStore {
			// Play's "short description" is longer than the App Store subtitle.
			return 80
		}
		return 30
	case ElementDescription:
		return 4000
	default:
		return 0
	}
}

// Listing is the metadata of one app listing in one locale.
// It is the unit of input for an evaluation.
type Listing struct {
	AppID        string   `json:"app_id" yaml:"app_id"`
	Name         string   `json:"name" yaml:"name"`
	Title        string   `json:"title" yaml:"title"`
	Subtitle     string   `json:"subtitle" yaml:"subtitle"`
	Description  string   `json:"description" yaml:"description"`
	Category     string   `json:"category" yaml:"category"`
	Locale       string   `json:"locale" yaml:"locale"`
	Platform     Platform `json:"platform" yaml:"platform"`
	Organization string   `json:"organization" yaml:"organization"`
}

// Text returns the raw text of the given element.
func (l *Listing) Text(el Element) string {
	switch el {
	case ElementTitle:
		return l.Title
	case ElementSubtitle:
		return l.Subtitle
	case ElementDescription:
		return l.Description
	default:
		return ""
	}
}

// Normalize fills defaults and trims whitespace in place.
func (l *Listing) Normalize() {
	l.AppID = strings.TrimSpace(l.AppID)
	l.Name = strings.TrimSpace(l.Name)
	l.Title = strings.TrimSpace(l.Title)
	l.Subtitle = strings.TrimSpace(l.Subtitle)
	l.Description = strings.TrimSpace(l.Description)
	l.Category = strings.TrimSpace(l.Category)
	l.Locale = strings.TrimSpace(l.Locale)
	l.Organization = strings.TrimSpace(l.Organization)

	if l.Platform == "" {
		l.Platform = PlatformAppStore
	}
	if l.Locale == "" {
		l.Locale = "en-US"
	}
	if l.Name == "" {
		l.Name = l.Title
	}
}

// Validate reports whether the listing can be evaluated at all.
// Empty title and subtitle are allowed (they score low, they do not error);
// a listing with no app id has nothing to key results on.
func (l *Listing) Validate() error {
	if l.AppID == "" {
		return fmt.Errorf("listing has no app_id")
	}
	switch l.Platform {
	case PlatformAppStore, PlatformPlayStore:
	default:
		return fmt.Errorf("unknown platform %q", l.Platform)
	}
	return nil
}
