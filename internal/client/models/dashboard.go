package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Overview is the body of GET /dashboard/overview. Unlike other endpoints
// it is not wrapped in a data envelope.
type Overview struct {
	TotalApplications Count           `json:"total_applications"`
	StatusSummary     []StatusCount   `json:"status_summary"`
	RecentActivity    []ActivityCount `json:"recent_activity"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  Count  `json:"count"`
}

type ActivityCount struct {
	ApplicationDate string `json:"application_date"`
	Count           Count  `json:"count"`
}

// Count is an aggregate counter. SQL drivers on the backend commonly
// serialize COUNT(*) as a string, so both "3" and 3 decode.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("invalid count %s: %w", b, err)
	}
	*c = Count(n)
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}
