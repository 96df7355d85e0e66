package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
)

type savedJobsView struct {
	app       *App
	gen       uint64
	list      *services.List[models.SavedJob]
	companies *services.List[models.Company]
}

func newSavedJobsView(a *App, gen uint64) *savedJobsView {
	return &savedJobsView{
		app:       a,
		gen:       gen,
		list:      services.NewList[models.SavedJob](nil),
		companies: services.NewList[models.Company](nil),
	}
}

func (v *savedJobsView) commands() []command {
	return []command{
		{name: "save", help: "save a job", run: func(ctx context.Context, _ []string) { v.save(ctx) }},
		{name: "delete", usage: "delete <id>", help: "remove a saved job", run: v.delete},
	}
}

func (v *savedJobsView) render(ctx context.Context) {
	a := v.app
	if !v.fetch(ctx) {
		return
	}

	companies, err := a.companies.List(ctx)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "load companies", err)
	} else {
		v.companies.Set(companies)
	}
	v.print()
}

func (v *savedJobsView) fetch(ctx context.Context) bool {
	a := v.app
	items, err := a.savedJobs.List(ctx)
	if !a.isCurrent(v.gen) {
		return false
	}
	if err != nil {
		a.fail(ctx, "load saved jobs", err)
		return false
	}
	v.list.Set(items)
	return true
}

func (v *savedJobsView) companyName(id models.ID) string {
	if c, ok := v.companies.Find(id); ok {
		return c.CompanyName
	}
	return "Unknown"
}

func (v *savedJobsView) print() {
	a := v.app
	a.println(a.ui.title.Render("Saved Jobs"))
	rows := make([][]string, 0, v.list.Len())
	for _, j := range v.list.Items() {
		rows = append(rows, []string{j.ID.String(), v.companyName(j.CompanyID), j.JobTitle, j.JobURL, j.Notes})
	}
	a.println(a.ui.Table([]string{"ID", "Company", "Job Title", "URL", "Notes"}, rows))
}

// save offers the loaded companies as the only valid company ids.
func (v *savedJobsView) save(ctx context.Context) {
	a := v.app
	if v.companies.Len() == 0 {
		a.notify(noteFailure, "Add a company first.")
		return
	}

	ids := make([]string, 0, v.companies.Len())
	var listing []string
	for _, c := range v.companies.Items() {
		ids = append(ids, c.ID.String())
		listing = append(listing, c.ID.String()+"="+c.CompanyName)
	}
	a.println(a.ui.faint.Render("Companies: " + strings.Join(listing, ", ")))

	schema := a.savedJobs.Schema().WithOptions("company_id", ids)
	form, err := a.promptForm(schema, nil)
	if err != nil {
		return
	}
	_, err = a.savedJobs.CreateWith(ctx, schema, form)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "save job", err)
		return
	}
	a.notify(noteSuccess, "Job saved!")
	if v.fetch(ctx) {
		v.print()
	}
}

func (v *savedJobsView) delete(ctx context.Context, args []string) {
	a := v.app
	if len(args) == 0 {
		a.println("Usage: delete <id>")
		return
	}
	j, ok := v.list.Find(models.ID(args[0]))
	if !ok {
		a.notify(noteFailure, "No saved job with id "+args[0]+".")
		return
	}
	if !a.confirm("Are you sure you want to delete this saved job?") {
		a.notify(noteInfo, "Cancelled.")
		return
	}
	err := a.savedJobs.Delete(ctx, j.ID)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "delete saved job", err)
		return
	}
	v.list.Remove(j.ID)
	a.notify(noteSuccess, "Saved job deleted!")
	v.print()
}
