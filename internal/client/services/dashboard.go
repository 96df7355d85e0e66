package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// DashboardAPI is the dashboard part of *client.API.
type DashboardAPI interface {
	Overview(ctx context.Context) (models.Overview, error)
	Reminders(ctx context.Context) ([]models.Reminder, error)
}

// Dashboard is everything the dashboard view shows. A part whose fetch
// failed is left empty.
type Dashboard struct {
	Overview    models.Overview
	Reminders   []models.Reminder
	DueTomorrow []models.Reminder
}

type DashboardService struct {
	api DashboardAPI
	now func() time.Time
}

func NewDashboardService(api DashboardAPI) *DashboardService {
	return &DashboardService{api: api, now: time.Now}
}

// Load fetches the overview and the reminders concurrently. Both requests
// always run to completion; the first error is returned along with
// whatever loaded.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	var (
		d Dashboard
		g errgroup.Group
	)

	g.Go(func() error {
		o, err := s.api.Overview(ctx)
		if err != nil {
			return fmt.Errorf("overview: %w", err)
		}
		d.Overview = o
		return nil
	})
	g.Go(func() error {
		rs, err := s.api.Reminders(ctx)
		if err != nil {
			return fmt.Errorf("reminders: %w", err)
		}
		d.Reminders = rs
		return nil
	})

	err := g.Wait()
	d.DueTomorrow = DueTomorrow(d.Reminders, s.now())
	return d, err
}

// DueTomorrow returns the unsent reminders whose date, in now's location,
// is the day after now. Time of day is ignored.
func DueTomorrow(reminders []models.Reminder, now time.Time) []models.Reminder {
	ty, tm, td := now.AddDate(0, 0, 1).Date()

	var due []models.Reminder
	for _, r := range reminders {
		if r.IsSent {
			continue
		}
		at, err := r.Date(now.Location())
		if err != nil {
			continue
		}
		if y, m, d := at.Date(); y == ty && m == tm && d == td {
			due = append(due, r)
		}
	}
	return due
}

// StatusShare is one status with its fraction of all applications.
type StatusShare struct {
	Status  string
	Count   int
	Percent float64
}

// StatusShares converts the status summary to percentages of the summed
// counts, largest first.
func StatusShares(o models.Overview) []StatusShare {
	total := 0
	for _, s := range o.StatusSummary {
		total += int(s.Count)
	}
	shares := make([]StatusShare, 0, len(o.StatusSummary))
	for _, s := range o.StatusSummary {
		share := StatusShare{Status: s.Status, Count: int(s.Count)}
		if total > 0 {
			share.Percent = 100 * float64(s.Count) / float64(total)
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Count > shares[j].Count })
	return shares
}
