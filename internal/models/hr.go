package models

import "time"

// InternalPosition is a position record from the HR database.
type InternalPosition struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	DepartmentName string    `json:"departmentName"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Employee is an employee record from the HR database.
type Employee struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PositionTitle  string `json:"positionTitle"`
	DepartmentName string `json:"departmentName"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
