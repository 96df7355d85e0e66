package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dustin/go-humanize"
)

type applicationDetailView struct {
	app   *App
	gen   uint64
	id    models.ID
	item  models.Application
	notes *services.List[models.Note]
}

func newApplicationDetailView(a *App, gen uint64, id string) *applicationDetailView {
	return &applicationDetailView{app: a, gen: gen, id: models.ID(id), notes: services.NewList[models.Note](nil)}
}

func (v *applicationDetailView) commands() []command {
	return []command{
		{name: "edit", help: "update this application", run: func(ctx context.Context, _ []string) { v.edit(ctx) }},
		{name: "delete", help: "delete this application", run: func(ctx context.Context, _ []string) { v.delete(ctx) }},
		{name: "upload", help: "upload a resume and/or cover letter", run: func(ctx context.Context, _ []string) { v.upload(ctx) }},
		{name: "note", help: "add a note", run: func(ctx context.Context, _ []string) { v.addNote(ctx) }},
		{name: "remind", help: "set a reminder", run: func(ctx context.Context, _ []string) { v.remind(ctx) }},
	}
}

func (v *applicationDetailView) render(ctx context.Context) {
	a := v.app
	if !v.load(ctx) {
		return
	}

	notes, err := a.api.Notes(ctx, v.id)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "load notes", err)
	} else {
		v.notes.Set(notes)
	}
	v.print()
}

// load fetches the application. It reports false when the view should not
// be drawn: the request failed or the view is gone.
func (v *applicationDetailView) load(ctx context.Context) bool {
	a := v.app
	item, err := a.applications.Get(ctx, v.id)
	if !a.isCurrent(v.gen) {
		return false
	}
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.showNotFound(ctx)
			return false
		}
		a.fail(ctx, "load application", err)
		return false
	}
	v.item = item
	return true
}

func (v *applicationDetailView) print() {
	a := v.app
	it := v.item
	a.println(a.ui.title.Render(it.JobTitle + " at " + it.CompanyName))
	a.println(a.ui.Fields(
		[2]string{"ID", it.ID.String()},
		[2]string{"Status", a.ui.Status(it.Status)},
		[2]string{"Applied", shortDate(it.ApplicationDate)},
		[2]string{"Notes", it.Notes},
		[2]string{"Resume", it.ResumeFilePath},
		[2]string{"Cover letter", it.CoverLetterFilePath},
	))

	a.println("")
	a.println(a.ui.title.Render("Notes"))
	if v.notes.Len() == 0 {
		a.println(a.ui.faint.Render("No notes yet."))
	}
	for _, n := range v.notes.Items() {
		line := "• " + n.Content
		if n.CreatedAt != "" {
			line += a.ui.faint.Render("  " + shortDate(n.CreatedAt))
		}
		a.println(line)
	}
}

func (v *applicationDetailView) form() services.Form {
	return services.Form{
		"company_name":     v.item.CompanyName,
		"job_title":        v.item.JobTitle,
		"application_date": shortDate(v.item.ApplicationDate),
		"status":           v.item.Status,
		"notes":            v.item.Notes,
	}
}

func (v *applicationDetailView) edit(ctx context.Context) {
	a := v.app
	form, err := a.promptForm(a.applications.Schema(), v.form())
	if err != nil {
		return
	}
	err = a.applications.Update(ctx, v.id, form)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "update application", err)
		return
	}
	a.notify(noteSuccess, "Application updated!")
	if v.load(ctx) {
		v.print()
	}
}

func (v *applicationDetailView) delete(ctx context.Context) {
	a := v.app
	if !a.confirm("Are you sure you want to delete this application?") {
		a.notify(noteInfo, "Cancelled.")
		return
	}
	if err := a.applications.Delete(ctx, v.id); err != nil {
		a.fail(ctx, "delete application", err)
		return
	}
	a.notify(noteSuccess, "Application deleted!")
	a.Navigate(ctx, "/applications")
}

// upload sends the chosen files, then fetches the application again so
// the stored file paths show.
func (v *applicationDetailView) upload(ctx context.Context) {
	a := v.app
	resumePath, err := GetSimpleText(a.in, "Resume file"+a.ui.faint.Render(" optional"), a.out)
	if err != nil {
		return
	}
	coverPath, err := GetSimpleText(a.in, "Cover letter file"+a.ui.faint.Render(" optional"), a.out)
	if err != nil {
		return
	}
	if resumePath == "" && coverPath == "" {
		a.notify(noteFailure, "Choose at least one file.")
		return
	}

	resume, closeResume, err := openAttachment(resumePath)
	if err != nil {
		a.notify(noteFailure, err.Error())
		return
	}
	defer closeResume()
	cover, closeCover, err := openAttachment(coverPath)
	if err != nil {
		a.notify(noteFailure, err.Error())
		return
	}
	defer closeCover()

	_, err = a.api.UploadFiles(ctx, v.id, resume.Attachment, cover.Attachment)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "upload files", err)
		return
	}
	a.notify(noteSuccess, fmt.Sprintf("Files uploaded (%s).", humanize.Bytes(resume.size+cover.size)))
	if v.load(ctx) {
		v.print()
	}
}

type attachment struct {
	*client.Attachment
	size uint64
}

// openAttachment opens path for upload; an empty path is no attachment.
func openAttachment(path string) (attachment, func(), error) {
	if path == "" {
		return attachment{}, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return attachment{}, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return attachment{}, nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return attachment{}, nil, fmt.Errorf("%s is a directory", path)
	}
	att := attachment{
		Attachment: &client.Attachment{FileName: filepath.Base(path), Content: f},
		size:       uint64(info.Size()),
	}
	return att, func() { _ = f.Close() }, nil
}

func (v *applicationDetailView) addNote(ctx context.Context) {
	a := v.app
	content, err := GetMultiline(a.in, "Note", a.out)
	if err != nil {
		return
	}
	form := services.Form{"content": content}
	if err := services.NoteSchema.Validate(form); err != nil {
		a.notify(noteFailure, "Note cannot be empty.")
		return
	}
	note, err := a.api.AddNote(ctx, v.id, form.Get("content"))
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "add note", err)
		return
	}
	v.notes.Append(note)
	a.notify(noteSuccess, "Note added!")
	v.print()
}

func (v *applicationDetailView) remind(ctx context.Context) {
	a := v.app
	form, err := a.promptForm(services.ReminderSchema, nil)
	if err != nil {
		return
	}
	if err := services.ReminderSchema.Validate(form); err != nil {
		a.fail(ctx, "set reminder", err)
		return
	}
	err = a.api.CreateReminder(ctx, models.Reminder{
		JobApplicationID: v.id,
		ReminderDate:     form.Get("reminder_date"),
		Message:          form.Get("message"),
	})
	if err != nil {
		a.fail(ctx, "set reminder", err)
		return
	}
	a.notify(noteSuccess, "Reminder set!")
}
