package models

import "time"

// Enquiry — заявка с публичной формы /contact.
// ProgramID на уровне приложения не проверяется.
type Enquiry struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	ContactNo   string    `json:"contact_no"`
	ProgramID   int64     `json:"program_id"`
	EnquiryDate time.Time `json:"enquiry_date"`
}

// EnquiryRow — заявка вместе с названием курса для админки.
// ProgramName пустой, если курс с таким id не найден.
type EnquiryRow struct {
	Enquiry
	ProgramName string `json:"program_name"`
}
