package models

type Company struct {
	ID           ID     `json:"id"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
	Industry     string `json:"industry,omitempty"`
	CompanySize  string `json:"company_size,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Location     string `json:"location,omitempty"`
	JobLink      string `json:"job_link,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (c Company) Key() ID { return c.ID }

type SavedJob struct {
	ID        ID     `json:"id"`
	CompanyID ID     `json:"company_id"`
	JobTitle  string `json:"job_title"`
	JobURL    string `json:"job_url,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (j SavedJob) Key() ID { return j.ID }
