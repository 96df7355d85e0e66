package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
)

type applicationsView struct {
	app  *App
	gen  uint64
	list *services.List[models.Application]
}

func newApplicationsView(a *App, gen uint64) *applicationsView {
	return &applicationsView{app: a, gen: gen, list: services.NewList[models.Application](nil)}
}

func (v *applicationsView) commands() []command {
	return []command{
		{name: "add", help: "add an application", run: func(ctx context.Context, _ []string) { v.add(ctx) }},
		{name: "search", help: "filter by keyword, status and date range", run: func(ctx context.Context, _ []string) { v.search(ctx) }},
		{name: "open", usage: "open <id>", help: "show an application", run: v.open},
	}
}

func (v *applicationsView) render(ctx context.Context) {
	a := v.app
	items, err := a.applications.List(ctx)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "load applications", err)
		return
	}
	v.list.Set(items)
	v.print()
}

func (v *applicationsView) print() {
	a := v.app
	a.println(a.ui.title.Render("Applications"))
	rows := make([][]string, 0, v.list.Len())
	for _, it := range v.list.Items() {
		rows = append(rows, []string{it.ID.String(), it.CompanyName, it.JobTitle, shortDate(it.ApplicationDate), a.ui.Status(it.Status)})
	}
	a.println(a.ui.Table([]string{"ID", "Company", "Job Title", "Applied", "Status"}, rows))
}

func (v *applicationsView) add(ctx context.Context) {
	a := v.app
	defaults := services.Form{
		"application_date": nowFn().Format(time.DateOnly),
		"status":           models.StatusApplied,
	}
	form, err := a.promptForm(a.applications.Schema(), defaults)
	if err != nil {
		return
	}
	created, err := a.applications.Create(ctx, form)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "add application", err)
		return
	}
	v.list.Prepend(created)
	a.notify(noteSuccess, "Application added!")
	v.print()
}

func (v *applicationsView) search(ctx context.Context) {
	a := v.app
	form, err := a.promptForm(services.SearchSchema, nil)
	if err != nil {
		return
	}
	if err := services.SearchSchema.Validate(form); err != nil {
		a.fail(ctx, "search", err)
		return
	}
	items, err := a.api.SearchApplications(ctx, models.ApplicationFilter{
		Keyword: form.Get("keyword"),
		Status:  form.Get("status"),
		From:    form.Get("from"),
		To:      form.Get("to"),
	})
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "search applications", err)
		return
	}
	v.list.Set(items)
	v.print()
}

func (v *applicationsView) open(ctx context.Context, args []string) {
	a := v.app
	if len(args) == 0 {
		a.println("Usage: open <id>")
		return
	}
	a.Navigate(ctx, "/applications/"+args[0])
}
