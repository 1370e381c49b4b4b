package models

// Institution is the campus an employee belongs to.
type Institution struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	InstitutionCode int    `json:"institutionCode"`
}

// Employee is the authenticated professor as returned by get-professor.
type Employee struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	Course      string      `json:"course,omitempty"`
	Institution Institution `json:"institution"`
}

// Session is the explicit identity handed to the form controller and the API client.
type Session struct {
	Employee Employee
	Token    string
}
