package models

// Country is a study destination
type Country struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name" example:"Australia"`
}

// University belongs to one destination country
type University struct {
	ID        int64  `json:"id"`
	Name      string `json:"name" example:"University of Sydney"`
	CountryID int64  `json:"countryId"`
}

// Course is an academic program offered by a university
type Course struct {
	ID             int64   `json:"id" example:"4"`
	Name           string  `json:"name" example:"Master of Data Science"`
	Level          *string `json:"level,omitempty" example:"postgraduate"`
	UniversityID   int64   `json:"universityId"`
	UniversityName string  `json:"universityName,omitempty"`
	CountryID      int64   `json:"countryId"`
	CountryName    string  `json:"countryName,omitempty"`
}
