package models

// StatusCount is the number of applications in one status
type StatusCount struct {
	Status ApplicationStatus `json:"status" example:"submitted"`
	Count  int64             `json:"count" example:"12"`
}

// CountryCount is the number of applications targeting one destination country
type CountryCount struct {
	CountryID   int64  `json:"countryId" example:"3"`
	CountryName string `json:"countryName" example:"Canada"`
	Count       int64  `json:"count" example:"8"`
}

// DocumentCompletion summarizes document review progress across applications
type DocumentCompletion struct {
	TotalApplications    int64 `json:"totalApplications"`
	CompleteApplications int64 `json:"completeApplications"`
	PendingApplications  int64 `json:"pendingApplications"`
	RejectedApplications int64 `json:"rejectedApplications"`
}

// DashboardStats is the overview shown on the dashboard, scoped to one branch or all of them
type DashboardStats struct {
	BranchID              *int64             `json:"branchId,omitempty"`
	TotalStudents         int64              `json:"totalStudents"`
	TotalApplications     int64              `json:"totalApplications"`
	ApplicationsByStatus  []StatusCount      `json:"applicationsByStatus"`
	ApplicationsByCountry []CountryCount     `json:"applicationsByCountry"`
	RecentApplications    []Application      `json:"recentApplications"`
	DocumentStats         DocumentCompletion `json:"documentStats"`
}
