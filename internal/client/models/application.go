package models

// Application statuses offered by the client forms.
const (
	StatusApplied     = "applied"
	StatusInterviewed = "interviewed"
	StatusOffered     = "offered"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// Statuses lists the application statuses in pipeline order.
var Statuses = []string{StatusApplied, StatusInterviewed, StatusOffered, StatusRejected, StatusHired}

type Application struct {
	ID                  ID     `json:"id"`
	CompanyName         string `json:"company_name"`
	JobTitle            string `json:"job_title"`
	ApplicationDate     string `json:"application_date"`
	Status              string `json:"status"`
	Notes               string `json:"notes,omitempty"`
	ResumeFilePath      string `json:"resume_file_path,omitempty"`
	CoverLetterFilePath string `json:"cover_letter_file_path,omitempty"`
}

func (a Application) Key() ID { return a.ID }

// ApplicationFilter is the query of /applications/search. Empty fields are
// sent empty, as the backend expects every parameter.
type ApplicationFilter struct {
	Keyword string
	Status  string
	From    string
	To      string
}

type Note struct {
	ID        ID     `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (n Note) Key() ID { return n.ID }
