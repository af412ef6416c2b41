package view_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tasktrack/internal/app"
	"tasktrack/internal/service"
	"tasktrack/internal/testutil"
	"tasktrack/internal/view"
)

// recorder collects notifications.
type recorder struct {
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

func TestComputeStats(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", Status: service.StatusTodo},
		{ID: "2", Status: service.StatusInProgress},
		{ID: "3", Status: service.StatusDone},
		{ID: "4", Status: service.StatusDone},
	}
	got := view.ComputeStats(tasks)
	want := view.Stats{Total: 4, Todo: 1, InProgress: 1, Done: 2}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if (view.ComputeStats(nil) != view.Stats{}) {
		t.Error("expected zero stats for no tasks")
	}
}

func TestDashboard_FiltersAreServerSide(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Ann", "ann@example.com")
	svc.AddTask("t1", "One", service.StatusTodo)
	svc.AddTask("t2", "Two", service.StatusDone)
	svc.Assign("t2", "u1")

	d := view.NewDashboard(app.New(svc), &recorder{})
	ctx := context.Background()
	if err := d.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Stats().Total != 2 {
		t.Fatalf("expected 2 tasks, got %d", d.Stats().Total)
	}

	if err := d.SetStatusFilter(ctx, "done"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Calls("ListTasks") != 2 {
		t.Errorf("expected filter change to re-issue list, got %d calls", svc.Calls("ListTasks"))
	}
	if got := d.Stats(); got != (view.Stats{Total: 1, Done: 1}) {
		t.Errorf("unexpected stats %+v", got)
	}

	if err := d.SetStatusFilter(ctx, view.FilterAll); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.SetAssigneeFilter(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tasks := d.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Fatalf("expected only t2, got %+v", tasks)
	}
	if d.AssigneeName(tasks[0]) != "Ann" {
		t.Errorf("expected assignee Ann, got %q", d.AssigneeName(tasks[0]))
	}
	if d.Filter() != (service.TaskFilter{AssigneeID: "u1"}) {
		t.Errorf("unexpected filter %+v", d.Filter())
	}
}

func TestDashboard_InvalidStatusFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	d := view.NewDashboard(app.New(svc), &recorder{})

	if err := d.SetStatusFilter(context.Background(), "blocked"); !errors.Is(err, service.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if svc.Calls("ListTasks") != 0 {
		t.Error("expected no request for an invalid filter")
	}
}

func TestDashboard_DeleteTaskNotifies(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "One", service.StatusTodo)
	rec := &recorder{}
	d := view.NewDashboard(app.New(svc), rec)
	ctx := context.Background()
	if err := d.Refresh(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.successes) != 1 || rec.successes[0] != "Task deleted successfully" {
		t.Errorf("unexpected notifications %v", rec.successes)
	}

	if err := d.DeleteTask(ctx, "t1"); err == nil {
		t.Fatal("expected error deleting twice")
	}
	if len(rec.errors) != 1 {
		t.Errorf("expected one error notification, got %v", rec.errors)
	}
	if d.Stats().Total != 0 {
		t.Errorf("expected empty list, got %d", d.Stats().Total)
	}
}

func TestTaskForm_CreateValidation(t *testing.T) {
	svc := testutil.NewFakeService()
	a := app.New(svc)
	rec := &recorder{}
	f := view.NewTaskForm(a.Tasks, a.Users, rec, nil)

	if f.Editing() {
		t.Error("expected create form")
	}
	if f.Fields.Status != "todo" || f.Fields.AssigneeID != view.Unassigned {
		t.Errorf("unexpected defaults %+v", f.Fields)
	}

	_, err := f.Submit(context.Background())
	if !errors.Is(err, service.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !f.Open() {
		t.Error("expected form to stay open")
	}
	if f.Errors["title"] != "Title is required" || f.Errors["description"] != "Description is required" {
		t.Errorf("unexpected field errors %v", f.Errors)
	}
	if svc.Calls("CreateTask") != 0 {
		t.Error("expected no request on validation failure")
	}
	if len(rec.errors) != 0 {
		t.Errorf("expected no notification on validation failure, got %v", rec.errors)
	}
}

func TestTaskForm_CreateSuccess(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Ann", "ann@example.com")
	a := app.New(svc)
	ctx := context.Background()
	if _, err := a.Users.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := &recorder{}
	f := view.NewTaskForm(a.Tasks, a.Users, rec, nil)
	f.Fields.Title = "Write report"
	f.Fields.Description = "Quarterly"
	f.Fields.AssigneeID = "u1"
	f.Fields.DueDate = "2026-11-01"

	task, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Open() {
		t.Error("expected form to close on success")
	}
	if task.AssigneeName == nil || *task.AssigneeName != "Ann" {
		t.Errorf("expected assignee Ann, got %v", task.AssigneeName)
	}
	if task.DueDate == nil || *task.DueDate != "2026-11-01" {
		t.Errorf("expected due date, got %v", task.DueDate)
	}
	if len(a.Tasks.Tasks()) != 1 {
		t.Errorf("expected task appended to store")
	}
	if len(rec.successes) != 1 || rec.successes[0] != "Task created successfully" {
		t.Errorf("unexpected notifications %v", rec.successes)
	}
}

func TestTaskForm_UnknownAssignee(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Ann", "ann@example.com")
	a := app.New(svc)
	if _, err := a.Users.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := view.NewTaskForm(a.Tasks, a.Users, &recorder{}, nil)
	f.Fields.Title = "A"
	f.Fields.Description = "d"
	f.Fields.AssigneeID = "ghost"

	if f.Validate() {
		t.Fatal("expected validation to fail")
	}
	if f.Errors["assignee_id"] == "" {
		t.Errorf("expected assignee error, got %v", f.Errors)
	}
}

func TestTaskForm_EditSubmitsWholeTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Ann", "ann@example.com")
	existing := svc.AddTask("t1", "One", service.StatusTodo)
	svc.Assign("t1", "u1")
	a := app.New(svc)
	ctx := context.Background()
	if _, err := a.Tasks.List(ctx, service.TaskFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current, err := a.Tasks.Get(ctx, existing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := &recorder{}
	f := view.NewTaskForm(a.Tasks, a.Users, rec, &current)
	if !f.Editing() || f.Fields.AssigneeID != "u1" {
		t.Fatalf("expected edit form bound to t1, got %+v", f.Fields)
	}
	f.Fields.Status = "in-progress"
	f.Fields.AssigneeID = view.Unassigned

	task, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != service.StatusInProgress || task.Assigned() {
		t.Errorf("unexpected task %+v", task)
	}
	if got := a.Tasks.Tasks()[0]; got.Status != service.StatusInProgress {
		t.Errorf("expected store entry updated, got %+v", got)
	}
	if cur, _ := a.Tasks.Current(); cur.Status != service.StatusInProgress {
		t.Errorf("expected current task updated, got %+v", cur)
	}
	if len(rec.successes) != 1 || rec.successes[0] != "Task updated successfully" {
		t.Errorf("unexpected notifications %v", rec.successes)
	}
}

func TestTaskForm_SubmitFailureKeepsOpen(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("backend down")
	a := app.New(svc)
	rec := &recorder{}
	f := view.NewTaskForm(a.Tasks, a.Users, rec, nil)
	f.Fields.Title = "A"
	f.Fields.Description = "d"

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !f.Open() {
		t.Error("expected form to stay open")
	}
	if f.Err != "backend down" {
		t.Errorf("expected inline error, got %q", f.Err)
	}
	if len(rec.errors) != 1 || rec.errors[0] != "Failed to create task: backend down" {
		t.Errorf("unexpected notifications %v", rec.errors)
	}
}

func TestUserForm_Submit(t *testing.T) {
	svc := testutil.NewFakeService()
	a := app.New(svc)
	rec := &recorder{}
	f := view.NewUserForm(a.Users, rec)

	f.Fields = view.UserFields{Name: "Ann", Email: "not-an-email"}
	if _, err := f.Submit(context.Background()); !errors.Is(err, service.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if f.Errors["email"] != "Invalid email address" || !f.Open() {
		t.Errorf("expected inline email error and open form, got %v", f.Errors)
	}

	f.Fields.Email = "ann@example.com"
	user, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ann" || f.Open() {
		t.Errorf("expected created user and closed form, got %+v open=%v", user, f.Open())
	}
	if f.Fields != (view.UserFields{}) {
		t.Errorf("expected fields reset, got %+v", f.Fields)
	}
	if len(rec.successes) != 1 || rec.successes[0] != "User created successfully" {
		t.Errorf("unexpected notifications %v", rec.successes)
	}
}

func TestUserForm_DuplicateEmail(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("u1", "Ann", "ann@example.com")
	a := app.New(svc)
	rec := &recorder{}
	f := view.NewUserForm(a.Users, rec)
	f.Fields = view.UserFields{Name: "Other Ann", Email: "ann@example.com"}

	if _, err := f.Submit(context.Background()); !errors.Is(err, service.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !f.Open() {
		t.Error("expected form to stay open")
	}
	want := "invalid input: User with this email already exists"
	if len(rec.errors) != 1 || rec.errors[0] != want {
		t.Errorf("expected %q, got %v", want, rec.errors)
	}
}

func TestWriterNotifier(t *testing.T) {
	var out, errOut bytes.Buffer
	n := &view.WriterNotifier{Out: &out, ErrOut: &errOut}
	n.Success("ok")
	n.Error("boom")
	if out.String() != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", out.String())
	}
	if errOut.String() != "error: boom\n" {
		t.Errorf("expected %q, got %q", "error: boom\n", errOut.String())
	}

	out.Reset()
	n.Quiet = true
	n.Success("ok")
	if out.String() != "" {
		t.Errorf("expected quiet success, got %q", out.String())
	}
}

func TestTaskForm_UnknownAssigneeWithNoUsers(t *testing.T) {
	svc := testutil.NewFakeService()
	a := app.New(svc)
	if _, err := a.Users.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := &recorder{}
	f := view.NewTaskForm(a.Tasks, a.Users, rec, nil)
	f.Fields.Title = "A"
	f.Fields.Description = "d"
	f.Fields.AssigneeID = "ghost"

	if _, err := f.Submit(context.Background()); !errors.Is(err, service.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if f.Errors["assignee_id"] != "unknown assignee: ghost" {
		t.Errorf("expected assignee error, got %v", f.Errors)
	}
	if n := svc.Calls("CreateTask"); n != 0 {
		t.Errorf("expected no create request, got %d", n)
	}
	if !f.Open() {
		t.Error("expected form to stay open")
	}
}

func TestTaskForm_AssigneeNotCheckedBeforeUsersLoad(t *testing.T) {
	svc := testutil.NewFakeService()
	a := app.New(svc)
	f := view.NewTaskForm(a.Tasks, a.Users, &recorder{}, nil)
	f.Fields.Title = "A"
	f.Fields.Description = "d"
	f.Fields.AssigneeID = "u7"

	if !f.Validate() {
		t.Errorf("expected assignee to be left to the backend, got %v", f.Errors)
	}
}
