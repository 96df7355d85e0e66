package services

import "github.com/dmitrijs2005/jobtracker/internal/client/models"

var LoginSchema = Schema{
	{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
	{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
}

// RegistrationSchema uses the backend's "frstname" spelling.
var RegistrationSchema = Schema{
	{Name: "frstname", Label: "First name", Required: true},
	{Name: "lastname", Label: "Last name", Required: true},
	{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
	{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
	{Name: "phone", Label: "Phone"},
	{Name: "current_location", Label: "Current location"},
	{Name: "skills", Label: "Skills", Kind: KindTextArea},
	{Name: "experience", Label: "Experience"},
	{Name: "portfolio_url", Label: "Portfolio URL", Kind: KindURL},
	{Name: "career_goals", Label: "Career goals", Kind: KindTextArea},
}

var ProfileSchema = Schema{
	{Name: "frstname", Label: "First name", Required: true},
	{Name: "lastname", Label: "Last name", Required: true},
	{Name: "phone", Label: "Phone"},
	{Name: "current_location", Label: "Current location"},
	{Name: "skills", Label: "Skills", Kind: KindTextArea},
	{Name: "experience", Label: "Experience"},
	{Name: "portfolio_url", Label: "Portfolio URL", Kind: KindURL},
	{Name: "career_goals", Label: "Career goals", Kind: KindTextArea},
}

var ApplicationSchema = Schema{
	{Name: "company_name", Label: "Company", Required: true},
	{Name: "job_title", Label: "Job title", Required: true},
	{Name: "application_date", Label: "Application date", Kind: KindDate, Required: true},
	{Name: "status", Label: "Status", Kind: KindSelect, Required: true, Options: models.Statuses},
	{Name: "notes", Label: "Notes", Kind: KindTextArea},
}

var CompanySchema = Schema{
	{Name: "company_name", Label: "Company", Required: true},
	{Name: "contact_name", Label: "Contact"},
	{Name: "job_title", Label: "Job title"},
	{Name: "industry", Label: "Industry"},
	{Name: "company_size", Label: "Company size"},
	{Name: "contact_email", Label: "Email", Kind: KindEmail},
	{Name: "phone_number", Label: "Phone"},
	{Name: "location", Label: "Location"},
	{Name: "job_link", Label: "Job link", Kind: KindURL},
	{Name: "notes", Label: "Notes", Kind: KindTextArea},
}

// SavedJobSchema leaves company_id options empty; the view fills them from
// the companies list.
var SavedJobSchema = Schema{
	{Name: "company_id", Label: "Company", Kind: KindSelect, Required: true},
	{Name: "job_title", Label: "Job title", Required: true},
	{Name: "job_url", Label: "Job URL", Kind: KindURL},
	{Name: "notes", Label: "Notes", Kind: KindTextArea},
}

var SearchSchema = Schema{
	{Name: "keyword", Label: "Keyword"},
	{Name: "status", Label: "Status", Kind: KindSelect, Options: models.Statuses},
	{Name: "from", Label: "From", Kind: KindDate},
	{Name: "to", Label: "To", Kind: KindDate},
}

var NoteSchema = Schema{
	{Name: "content", Label: "Note", Kind: KindTextArea, Required: true},
}

var ReminderSchema = Schema{
	{Name: "reminder_date", Label: "Reminder date & time", Kind: KindDateTime, Required: true},
	{Name: "message", Label: "Message", Kind: KindTextArea},
}
