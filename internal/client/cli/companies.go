package cli

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
)

type companiesView struct {
	app  *App
	gen  uint64
	list *services.List[models.Company]
}

func newCompaniesView(a *App, gen uint64) *companiesView {
	return &companiesView{app: a, gen: gen, list: services.NewList[models.Company](nil)}
}

func (v *companiesView) commands() []command {
	return []command{
		{name: "add", help: "add a company", run: func(ctx context.Context, _ []string) { v.add(ctx) }},
		{name: "edit", usage: "edit <id>", help: "edit a company", run: v.edit},
		{name: "delete", usage: "delete <id>", help: "delete a company", run: v.delete},
	}
}

func (v *companiesView) render(ctx context.Context) {
	a := v.app
	items, err := a.companies.List(ctx)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "load companies", err)
		return
	}
	v.list.Set(items)
	v.print()
}

func (v *companiesView) print() {
	a := v.app
	a.println(a.ui.title.Render("Companies To Contact"))
	rows := make([][]string, 0, v.list.Len())
	for _, c := range v.list.Items() {
		rows = append(rows, []string{c.ID.String(), c.CompanyName, c.ContactName, c.JobTitle, c.ContactEmail, c.PhoneNumber, c.Location, c.Industry})
	}
	a.println(a.ui.Table([]string{"ID", "Company", "Contact", "Job Title", "Email", "Phone", "Location", "Industry"}, rows))
}

func companyForm(c models.Company) services.Form {
	return services.Form{
		"company_name":  c.CompanyName,
		"contact_name":  c.ContactName,
		"job_title":     c.JobTitle,
		"industry":      c.Industry,
		"company_size":  c.CompanySize,
		"contact_email": c.ContactEmail,
		"phone_number":  c.PhoneNumber,
		"location":      c.Location,
		"job_link":      c.JobLink,
		"notes":         c.Notes,
	}
}

func companyFromForm(id models.ID, f services.Form) models.Company {
	return models.Company{
		ID:           id,
		CompanyName:  f.Get("company_name"),
		ContactName:  f.Get("contact_name"),
		JobTitle:     f.Get("job_title"),
		Industry:     f.Get("industry"),
		CompanySize:  f.Get("company_size"),
		ContactEmail: f.Get("contact_email"),
		PhoneNumber:  f.Get("phone_number"),
		Location:     f.Get("location"),
		JobLink:      f.Get("job_link"),
		Notes:        f.Get("notes"),
	}
}

func (v *companiesView) add(ctx context.Context) {
	a := v.app
	form, err := a.promptForm(a.companies.Schema(), nil)
	if err != nil {
		return
	}
	created, err := a.companies.Create(ctx, form)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "add company", err)
		return
	}
	v.list.Prepend(created)
	a.notify(noteSuccess, "Company added!")
	v.print()
}

func (v *companiesView) edit(ctx context.Context, args []string) {
	a := v.app
	c, ok := v.pick(args, "edit <id>")
	if !ok {
		return
	}
	form, err := a.promptForm(a.companies.Schema(), companyForm(c))
	if err != nil {
		return
	}
	err = a.companies.Update(ctx, c.ID, form)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "update company", err)
		return
	}
	v.list.Replace(companyFromForm(c.ID, form))
	a.notify(noteSuccess, "Company updated!")
	v.print()
}

func (v *companiesView) delete(ctx context.Context, args []string) {
	a := v.app
	c, ok := v.pick(args, "delete <id>")
	if !ok {
		return
	}
	if !a.confirm("Are you sure you want to delete this company?") {
		a.notify(noteInfo, "Cancelled.")
		return
	}
	err := a.companies.Delete(ctx, c.ID)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "delete company", err)
		return
	}
	v.list.Remove(c.ID)
	a.notify(noteSuccess, "Company deleted!")
	v.print()
}

func (v *companiesView) pick(args []string, usage string) (models.Company, bool) {
	a := v.app
	if len(args) == 0 {
		a.println("Usage: " + usage)
		return models.Company{}, false
	}
	c, ok := v.list.Find(models.ID(args[0]))
	if !ok {
		a.notify(noteFailure, "No company with id "+args[0]+".")
	}
	return c, ok
}
