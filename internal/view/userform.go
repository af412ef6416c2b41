package view

import (
	"context"
	"errors"

	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

// UserFields are the editable values of a user form.
type UserFields struct {
	Name  string
	Email string
}

// UserForm creates a user.
type UserForm struct {
	users  *store.UserStore
	notify Notifier

	Fields UserFields
	Errors map[string]string
	Err    string

	open bool
}

// NewUserForm opens an empty user form.
func NewUserForm(users *store.UserStore, n Notifier) *UserForm {
	return &UserForm{users: users, notify: n, open: true}
}

// Open reports whether the form is still shown.
func (f *UserForm) Open() bool { return f.open }

// Close dismisses the form without submitting.
func (f *UserForm) Close() { f.open = false }

// Validate checks the name and email shape and fills Errors.
func (f *UserForm) Validate() bool {
	f.Errors = map[string]string{}
	var verr *service.ValidationError
	if errors.As(f.payload().Validate(), &verr) {
		for k, v := range verr.Fields {
			f.Errors[k] = v
		}
	}
	return len(f.Errors) == 0
}

func (f *UserForm) payload() service.UserCreate {
	return service.UserCreate{Name: f.Fields.Name, Email: f.Fields.Email}
}

// Submit validates and creates the user. On success the fields are reset
// and the form closes; on failure it stays open with the backend message.
func (f *UserForm) Submit(ctx context.Context) (service.User, error) {
	f.Err = ""
	if !f.Validate() {
		return service.User{}, &service.ValidationError{Fields: f.Errors}
	}

	user, err := f.users.Create(ctx, f.payload())
	if err != nil {
		f.Err = err.Error()
		msg := err.Error()
		if msg == "" {
			msg = "Failed to create user"
		}
		f.notify.Error(msg)
		return service.User{}, err
	}

	f.notify.Success("User created successfully")
	f.Fields = UserFields{}
	f.open = false
	return user, nil
}
