package console

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/anas-cht/notifications-project/internal/api"
)

// Dashboard aggregates the three collections into the overview screen:
// headline counts, the most recent notifications, and the most active
// categories. Everything is derived from fetched data, nothing persists.
type Dashboard struct {
	Categories    []api.Category
	Collaborators []api.Collaborator
	Notifications []api.Notification
}

// LoadDashboard fetches all three collections. A failed fetch degrades that
// section to empty rather than failing the whole screen.
func LoadDashboard(ctx context.Context, client *api.Client, log *zap.Logger) *Dashboard {
	d := &Dashboard{}

	categories, err := client.AllCategories(ctx)
	if err != nil {
		log.Warn("fetching categories failed", zap.Error(err))
	} else {
		d.Categories = categories
	}

	collaborators, err := client.AllCollaborators(ctx)
	if err != nil {
		log.Warn("fetching collaborators failed", zap.Error(err))
	} else {
		d.Collaborators = collaborators
	}

	notifications, err := client.AllNotifications(ctx)
	if err != nil {
		log.Warn("fetching notifications failed", zap.Error(err))
	} else {
		d.Notifications = notifications
	}

	return d
}

// RecentNotifications returns the n most recently sent notifications,
// newest first. Notifications that were never sent are skipped.
func (d *Dashboard) RecentNotifications(n int) []api.Notification {
	sent := make([]api.Notification, 0, len(d.Notifications))
	for _, notification := range d.Notifications {
		if notification.SentAt != nil {
			sent = append(sent, notification)
		}
	}
	sort.SliceStable(sent, func(i, j int) bool {
		return sent[i].SentAt.After(*sent[j].SentAt)
	})
	if len(sent) > n {
		sent = sent[:n]
	}
	return sent
}

// TopCategories returns the n categories with the most notifications,
// busiest first.
func (d *Dashboard) TopCategories(n int) []api.Category {
	top := make([]api.Category, len(d.Categories))
	copy(top, d.Categories)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].NotificationsCount > top[j].NotificationsCount
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// CategoryName resolves a category id to its display name. Categories are
// displayed by their description field throughout the console.
func (d *Dashboard) CategoryName(id int64) string {
	for _, category := range d.Categories {
		if category.ID == id {
			return category.Description
		}
	}
	return "Unknown Module"
}

// Render writes the overview screen.
func (d *Dashboard) Render(w io.Writer, now time.Time) {
	fmt.Fprintln(w, "Dashboard — overview of your notification platform")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Notifications Sent:    %d\n", len(d.Notifications))
	fmt.Fprintf(w, "Active Collaborators:  %d\n", len(d.Collaborators))
	fmt.Fprintf(w, "Configured Modules:    %d\n", len(d.Categories))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Recent Notifications")
	recent := d.RecentNotifications(3)
	if len(recent) == 0 {
		fmt.Fprintln(w, "  No recent notifications")
	}
	for _, notification := range recent {
		title := notification.Title
		if title == "" {
			title = "Notification sent"
		}
		fmt.Fprintf(w, "  • %s — %s • %s\n",
			title,
			d.CategoryName(notification.CategoryID),
			FormatRelative(notification.SentAt, now),
		)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Most Active Modules")
	for i, category := range d.TopCategories(4) {
		fmt.Fprintf(w, "  %d. %s — %d notifications\n", i+1, category.Description, category.NotificationsCount)
	}
}

// FormatRelative renders a sent timestamp the way the dashboard shows it:
// "Just now", "N min ago", "N h ago", "N day(s) ago".
func FormatRelative(t *time.Time, now time.Time) string {
	if t == nil {
		return "Unknown date"
	}

	minutes := int(now.Sub(*t).Minutes())
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d h ago", hours)
	}

	days := hours / 24
	if days > 1 {
		return fmt.Sprintf("%d days ago", days)
	}
	return "1 day ago"
}
