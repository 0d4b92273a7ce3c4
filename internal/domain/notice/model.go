package notice

import (
	"errors"
	"strings"
	"time"
)

// Notice statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Color presets for the lock-screen board.
const (
	ColorOrange = "orange" // default
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorGrey   = "grey"
)

// ValidColors contains all valid colour preset names.
var ValidColors = []string{ColorOrange, ColorRed, ColorGreen, ColorBlue, ColorGrey}

// Domain errors
var (
	ErrEmptyTitle       = errors.New("notice title cannot be empty")
	ErrEmptyContent     = errors.New("notice content cannot be empty")
	ErrInvalidColor     = errors.New("notice color must be one of: orange, red, green, blue, grey")
	ErrAlreadyPublished = errors.New("notice is already published")
)

// Notice is an announcement shown on the kiosk lock screen (opening hours,
// promotions, house rules). Content supports Markdown formatting.
type Notice struct {
	ID          string
	Status      string // draft, published
	Title       string
	Content     string // Markdown content
	Color       string
	CreatedBy   string // admin ID of the author
	CreatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyContent
	}
	if n.Status != StatusDraft && n.Status != StatusPublished {
		return errors.New("notice status must be 'draft' or 'published'")
	}
	if !isValidColor(n.Color) {
		return ErrInvalidColor
	}
	return nil
}

// Publish makes the notice visible on the lock screen.
// PRE: Notice is a draft
// POST: Status is published, PublishedAt set
func (n *Notice) Publish(now time.Time) error {
	if n.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	n.Status = StatusPublished
	n.PublishedAt = now
	return nil
}

func isValidColor(color string) bool {
	for _, c := range ValidColors {
		if c == color {
			return true
		}
	}
	return false
}
