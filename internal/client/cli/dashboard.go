package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dustin/go-humanize"
)

// nowFn is a test seam for relative reminder dates.
var nowFn = time.Now

const barWidth = 30

type dashboardView struct {
	app *App
	gen uint64
}

func (v *dashboardView) commands() []command { return nil }

func (v *dashboardView) render(ctx context.Context) {
	a := v.app
	d, err := a.dashboard.Load(ctx)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "load the dashboard", err)
	}

	a.println(a.ui.title.Render("Dashboard Overview"))
	a.println(a.ui.Fields([2]string{"Total applications", humanize.Comma(int64(d.Overview.TotalApplications))}))

	shares := services.StatusShares(d.Overview)
	if len(shares) > 0 {
		a.println("")
		a.println(a.ui.title.Render("Application Status"))
		rows := make([][]string, 0, len(shares))
		for _, s := range shares {
			rows = append(rows, []string{
				a.ui.Status(s.Status),
				humanize.Comma(int64(s.Count)),
				fmt.Sprintf("%.0f%%", s.Percent),
				a.ui.Bar(s.Count, shares[0].Count, barWidth),
			})
		}
		a.println(a.ui.Table([]string{"Status", "Count", "Share", ""}, rows))
	}

	if len(d.Overview.RecentActivity) > 0 {
		a.println("")
		a.println(a.ui.title.Render("Recent Activity (30 Days)"))
		peak := 0
		for _, r := range d.Overview.RecentActivity {
			peak = max(peak, int(r.Count))
		}
		rows := make([][]string, 0, len(d.Overview.RecentActivity))
		for _, r := range d.Overview.RecentActivity {
			rows = append(rows, []string{shortDate(r.ApplicationDate), humanize.Comma(int64(r.Count)), a.ui.Bar(int(r.Count), peak, barWidth)})
		}
		a.println(a.ui.Table([]string{"Date", "Applications", ""}, rows))
	}

	a.println("")
	a.println(a.ui.title.Render("Reminders Due Tomorrow"))
	if len(d.DueTomorrow) == 0 {
		a.println(a.ui.faint.Render("Nothing due tomorrow."))
	}
	for _, r := range d.DueTomorrow {
		a.println("• " + reminderLine(r))
	}

	if upcoming := upcomingReminders(d.Reminders, nowFn()); len(upcoming) > 0 {
		a.println("")
		a.println(a.ui.title.Render("Upcoming Reminders"))
		rows := make([][]string, 0, len(upcoming))
		for _, r := range upcoming {
			rows = append(rows, []string{r.when, r.rem.JobApplicationID.String(), r.rem.Message})
		}
		a.println(a.ui.Table([]string{"When", "Application", "Message"}, rows))
	}
}

type upcoming struct {
	rem  models.Reminder
	when string
}

// upcomingReminders lists unsent reminders from now on with a relative
// date, in backend order.
func upcomingReminders(rs []models.Reminder, now time.Time) []upcoming {
	var out []upcoming
	for _, r := range rs {
		if r.IsSent {
			continue
		}
		at, err := r.Date(now.Location())
		if err != nil || at.Before(now) {
			continue
		}
		out = append(out, upcoming{rem: r, when: humanize.RelTime(at, now, "ago", "from now")})
	}
	return out
}

func reminderLine(r models.Reminder) string {
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}
	return fmt.Sprintf("%s  (application %s, %s)", msg, r.JobApplicationID, r.ReminderDate)
}

// shortDate trims a backend timestamp to its date.
func shortDate(s string) string {
	if len(s) >= len(time.DateOnly) {
		return s[:len(time.DateOnly)]
	}
	return s
}
