package app_test

import (
	"context"
	"testing"

	"tasktrack/internal/app"
	"tasktrack/internal/service"
	"tasktrack/internal/testutil"
)

func TestNew_StoresShareService(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Ann", "ann@example.com")
	svc.AddTask("t1", "One", service.StatusTodo)

	a := app.New(svc)
	ctx := context.Background()
	if _, err := a.Tasks.List(ctx, service.TaskFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Users.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Tasks.Tasks()) != 1 || len(a.Users.Users()) != 1 {
		t.Errorf("expected 1 task and 1 user, got %d and %d", len(a.Tasks.Tasks()), len(a.Users.Users()))
	}
}
