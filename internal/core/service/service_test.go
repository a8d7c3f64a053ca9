package service

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"focustime/internal/adapter/database"
	"focustime/internal/core/domain"
	"focustime/pkg/auth"
	"focustime/pkg/test"
	"focustime/pkg/test/factory"
)

type ServiceSuite struct {
	suite.Suite
	DB  *database.DB
	ctx context.Context

	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
	todos    *ToDoService
	focus    *FocusSessionService
}

func TestServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.DB = test.InitTestDB()
	s.ctx = context.Background()

	uow := database.NewUnitOfWork(s.DB)
	tokens := &auth.JWT{Secret: "test-secret"}

	s.auth = NewAuthService(uow, tokens)
	s.projects = NewProjectService(uow, nil)
	s.tasks = NewTaskService(uow)
	s.todos = NewToDoService(uow)
	s.focus = NewFocusSessionService(uow, nil)
}

func (s *ServiceSuite) TearDownTest() {
	test.TeardownTestDB(s.T(), s.DB)
}

func (s *ServiceSuite) registerUser(username, email string) domain.User {
	user, err := s.auth.Register(s.ctx, username, email, "secret123")
	Expect(err).ToNot(HaveOccurred())
	return user
}

func (s *ServiceSuite) createProject(userID string) domain.Project {
	project, err := s.projects.Create(s.ctx, userID, "Deep Work", "#3fb27f")
	Expect(err).ToNot(HaveOccurred())
	return project
}

func (s *ServiceSuite) TestRegisterFromFabricatedPayload() {
	params := factory.NewRegister()

	user, err := s.auth.Register(s.ctx, params.Username, params.Email, params.Password)

	Expect(err).ToNot(HaveOccurred())
	Expect(user.Email).To(Equal(params.Email))

	project := factory.NewProject(map[string]any{"Title": "Thesis"})

	created, err := s.projects.Create(s.ctx, user.Identificator, project.Title, project.Color)

	Expect(err).ToNot(HaveOccurred())
	Expect(created.Title).To(Equal("Thesis"))
	Expect(created.Active).To(BeTrue())
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	user := s.registerUser("alice", "alice@example.com")

	Expect(user.Identificator).ToNot(BeEmpty())

	loggedIn, token, err := s.auth.Login(s.ctx, "alice@example.com", "secret123")

	Expect(err).ToNot(HaveOccurred())
	Expect(token).ToNot(BeEmpty())
	Expect(loggedIn.Identificator).To(Equal(user.Identificator))
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	s.registerUser("alice", "alice@example.com")

	_, _, err := s.auth.Login(s.ctx, "alice@example.com", "wrong999")

	Expect(err).To(BeAssignableToTypeOf(&domain.InvalidPasswordError{}))
}

func (s *ServiceSuite) TestLoginUnknownEmail() {
	_, _, err := s.auth.Login(s.ctx, "nobody@example.com", "secret123")

	Expect(err).To(BeAssignableToTypeOf(&domain.NotFoundError{}))
}

func (s *ServiceSuite) TestRegisterDuplicateEmail() {
	s.registerUser("alice", "alice@example.com")

	_, err := s.auth.Register(s.ctx, "alice2", "alice@example.com", "secret123")

	Expect(err).To(BeAssignableToTypeOf(&domain.AlreadyExistsError{}))
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	s.registerUser("alice", "alice@example.com")

	_, err := s.auth.Register(s.ctx, "alice", "other@example.com", "secret123")

	Expect(err).To(BeAssignableToTypeOf(&domain.AlreadyExistsError{}))
}

func (s *ServiceSuite) TestProjectAccessByNonOwner() {
	alice := s.registerUser("alice", "alice@example.com")
	bob := s.registerUser("bob", "bob@example.com")

	project := s.createProject(alice.Identificator)

	_, err := s.projects.Get(s.ctx, bob.Identificator, project.Identificator)

	Expect(err).To(BeAssignableToTypeOf(&domain.AuthorizationError{}))
}

func (s *ServiceSuite) TestProjectGetAbsent() {
	alice := s.registerUser("alice", "alice@example.com")

	_, err := s.projects.Get(s.ctx, alice.Identificator, "b7a9c1f0-0000-4000-8000-000000000000")

	Expect(err).To(BeAssignableToTypeOf(&domain.NotFoundError{}))
}

// A task created by a non-owner must not leave any row behind.
func (s *ServiceSuite) TestTaskCreateOnForeignProjectPersistsNothing() {
	alice := s.registerUser("alice", "alice@example.com")
	bob := s.registerUser("bob", "bob@example.com")

	project := s.createProject(alice.Identificator)

	_, err := s.tasks.Create(s.ctx, bob.Identificator, project.Identificator, "Sneaky task", "")

	Expect(err).To(BeAssignableToTypeOf(&domain.AuthorizationError{}))

	tasks, err := s.tasks.ListByProject(s.ctx, alice.Identificator, project.Identificator)

	Expect(err).ToNot(HaveOccurred())
	Expect(tasks).To(BeEmpty())
}

func (s *ServiceSuite) TestTaskStatusTransitions() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	task, err := s.tasks.Create(s.ctx, alice.Identificator, project.Identificator, "Write chapter", "")
	Expect(err).ToNot(HaveOccurred())
	Expect(task.Status.Name).To(Equal(domain.StatusInProgress))

	done, err := s.tasks.ChangeStatus(s.ctx, alice.Identificator, project.Identificator, task.Identificator, domain.StatusCompleted)
	Expect(err).ToNot(HaveOccurred())
	Expect(done.CompletedAt).ToNot(BeNil())

	first := *done.CompletedAt

	// Completing again keeps the original timestamp.
	again, err := s.tasks.ChangeStatus(s.ctx, alice.Identificator, project.Identificator, task.Identificator, domain.StatusCompleted)
	Expect(err).ToNot(HaveOccurred())
	Expect(again.CompletedAt.Equal(first)).To(BeTrue())

	reopened, err := s.tasks.ChangeStatus(s.ctx, alice.Identificator, project.Identificator, task.Identificator, domain.StatusInProgress)
	Expect(err).ToNot(HaveOccurred())
	Expect(reopened.CompletedAt).To(BeNil())
	Expect(reopened.Status.Name).To(Equal(domain.StatusInProgress))
}

func (s *ServiceSuite) TestTaskStatusRejectsUnknownTarget() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	task, err := s.tasks.Create(s.ctx, alice.Identificator, project.Identificator, "Write chapter", "")
	Expect(err).ToNot(HaveOccurred())

	_, err = s.tasks.ChangeStatus(s.ctx, alice.Identificator, project.Identificator, task.Identificator, "archived")

	Expect(err).To(BeAssignableToTypeOf(&domain.ValidationError{}))

	// The transaction rolled back, so the task is untouched.
	tasks, err := s.tasks.ListByProject(s.ctx, alice.Identificator, project.Identificator)
	Expect(err).ToNot(HaveOccurred())
	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Status.Name).To(Equal(domain.StatusInProgress))
}

func (s *ServiceSuite) TestFocusSessionOverlappingSavesBothPersist() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	started := time.Now().UTC().Add(-time.Hour)

	first, err := s.focus.Save(s.ctx, alice.Identificator, project.Identificator, started, 1800)
	Expect(err).ToNot(HaveOccurred())
	Expect(first.ID).ToNot(BeZero())

	second, err := s.focus.Save(s.ctx, alice.Identificator, project.Identificator, started.Add(10*time.Minute), 1800)
	Expect(err).ToNot(HaveOccurred())
	Expect(second.ID).ToNot(Equal(first.ID))
}

func (s *ServiceSuite) TestFocusSessionRejectsNonPositiveDuration() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	_, err := s.focus.Save(s.ctx, alice.Identificator, project.Identificator, time.Now().UTC(), 0)

	Expect(err).To(BeAssignableToTypeOf(&domain.ValidationError{}))
}

func (s *ServiceSuite) TestFocusSessionOnForeignProject() {
	alice := s.registerUser("alice", "alice@example.com")
	bob := s.registerUser("bob", "bob@example.com")

	project := s.createProject(alice.Identificator)

	_, err := s.focus.Save(s.ctx, bob.Identificator, project.Identificator, time.Now().UTC(), 1500)

	Expect(err).To(BeAssignableToTypeOf(&domain.AuthorizationError{}))
}

func (s *ServiceSuite) TestProjectSummariesAggregate() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	now := time.Now().UTC()

	_, err := s.focus.Save(s.ctx, alice.Identificator, project.Identificator, now, 1500)
	Expect(err).ToNot(HaveOccurred())

	_, err = s.focus.Save(s.ctx, alice.Identificator, project.Identificator, now.AddDate(0, 0, -20), 600)
	Expect(err).ToNot(HaveOccurred())

	summaries, err := s.projects.Summaries(s.ctx, alice.Identificator)

	Expect(err).ToNot(HaveOccurred())
	Expect(summaries).To(HaveLen(1))
	Expect(summaries[0].ProjectIdentificator).To(Equal(project.Identificator))
	Expect(summaries[0].TodaySeconds).To(Equal(1500))
	Expect(summaries[0].TotalSeconds).To(Equal(2100))
}

func (s *ServiceSuite) TestHeatmapReturnsDailyTotals() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	now := time.Now().UTC()

	_, err := s.focus.Save(s.ctx, alice.Identificator, project.Identificator, now, 1200)
	Expect(err).ToNot(HaveOccurred())

	_, err = s.focus.Save(s.ctx, alice.Identificator, project.Identificator, now.Add(time.Second), 300)
	Expect(err).ToNot(HaveOccurred())

	totals, err := s.projects.Heatmap(s.ctx, alice.Identificator)

	Expect(err).ToNot(HaveOccurred())
	Expect(totals).To(HaveLen(1))
	Expect(totals[0].TotalSeconds).To(Equal(1500))
}

func (s *ServiceSuite) TestProjectDetailLoadsTasksAndSessions() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	_, err := s.tasks.Create(s.ctx, alice.Identificator, project.Identificator, "Write chapter", "")
	Expect(err).ToNot(HaveOccurred())

	_, err = s.focus.Save(s.ctx, alice.Identificator, project.Identificator, time.Now().UTC(), 1500)
	Expect(err).ToNot(HaveOccurred())

	detail, err := s.projects.Detail(s.ctx, alice.Identificator, project.Identificator)

	Expect(err).ToNot(HaveOccurred())
	Expect(detail.Project.Identificator).To(Equal(project.Identificator))
	Expect(detail.Tasks).To(HaveLen(1))
	Expect(detail.FocusSessions).To(HaveLen(1))
}

func (s *ServiceSuite) TestToDoLifecycle() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	task, err := s.tasks.Create(s.ctx, alice.Identificator, project.Identificator, "Write chapter", "")
	Expect(err).ToNot(HaveOccurred())

	todo, err := s.todos.Create(s.ctx, alice.Identificator, task.Identificator, "Outline section")
	Expect(err).ToNot(HaveOccurred())

	done, err := s.todos.ChangeState(s.ctx, alice.Identificator, task.Identificator, todo.Identificator, domain.ToDoStatusCompleted)
	Expect(err).ToNot(HaveOccurred())
	Expect(done.CompletedTime).ToNot(BeNil())

	Expect(s.todos.Delete(s.ctx, alice.Identificator, task.Identificator, todo.Identificator)).To(Succeed())

	// Soft-deleted to-dos disappear from listings and cannot transition.
	todos, err := s.todos.ListByTask(s.ctx, alice.Identificator, task.Identificator)
	Expect(err).ToNot(HaveOccurred())
	Expect(todos).To(BeEmpty())

	_, err = s.todos.ChangeState(s.ctx, alice.Identificator, task.Identificator, todo.Identificator, domain.ToDoStatusInProgress)
	Expect(err).To(BeAssignableToTypeOf(&domain.NotFoundError{}))
}

func (s *ServiceSuite) TestProjectDeleteCascades() {
	alice := s.registerUser("alice", "alice@example.com")
	project := s.createProject(alice.Identificator)

	_, err := s.tasks.Create(s.ctx, alice.Identificator, project.Identificator, "Write chapter", "")
	Expect(err).ToNot(HaveOccurred())

	Expect(s.projects.Delete(s.ctx, alice.Identificator, project.Identificator)).To(Succeed())

	_, err = s.projects.Get(s.ctx, alice.Identificator, project.Identificator)
	Expect(err).To(BeAssignableToTypeOf(&domain.NotFoundError{}))
}
