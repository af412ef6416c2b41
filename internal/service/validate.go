package service

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format of due dates.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// ValidEmail reports whether s has the shape of an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Validate checks required fields and fills in the default status.
func (in *TaskCreate) Validate() error {
	errs := fieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "Description is required"
	}
	if in.Status == "" {
		in.Status = StatusTodo
	} else if !in.Status.Valid() {
		errs["status"] = "invalid status: " + string(in.Status)
	}
	if in.DueDate != nil && *in.DueDate != "" && !ValidDate(*in.DueDate) {
		errs["due_date"] = "invalid due date: " + *in.DueDate
	}
	return errs.err()
}

// Validate checks the fields that are set.
func (p TaskPatch) Validate() error {
	errs := fieldErrors{}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs["title"] = "Title is required"
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		errs["description"] = "Description is required"
	}
	if p.Status != nil && !p.Status.Valid() {
		errs["status"] = "invalid status: " + string(*p.Status)
	}
	if p.DueDate != nil && *p.DueDate != "" && !ValidDate(*p.DueDate) {
		errs["due_date"] = "invalid due date: " + *p.DueDate
	}
	return errs.err()
}

// Validate checks the name and email shape.
func (in UserCreate) Validate() error {
	errs := fieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(in.Email) {
		errs["email"] = "Invalid email address"
	}
	return errs.err()
}
