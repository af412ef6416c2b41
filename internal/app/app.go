// Package app wires the stores into a single state container.
package app

import (
	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

// App is the client state, created once at startup and handed to views.
type App struct {
	Tasks *store.TaskStore
	Users *store.UserStore
}

// New creates an App with empty stores backed by svc.
func New(svc service.Service) *App {
	return &App{
		Tasks: store.NewTaskStore(svc),
		Users: store.NewUserStore(svc),
	}
}

