package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"focustime/internal/adapter/database"
	apphttp "focustime/internal/adapter/http"
	"focustime/internal/adapter/http/handler"
	"focustime/internal/adapter/ws"
	"focustime/internal/core/model/response"
	"focustime/internal/core/service"
	"focustime/pkg/auth"
	"focustime/pkg/logger"
	"focustime/pkg/test"
)

type APISuite struct {
	suite.Suite
	DB     *database.DB
	Router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.DB = test.InitTestDB()

	uow := database.NewUnitOfWork(s.DB)
	tokens := &auth.JWT{Secret: "test-secret"}

	lokiLogger, err := logger.NewLokiLogger("focustime-test", "")
	Expect(err).ToNot(HaveOccurred())

	authService := service.NewAuthService(uow, tokens)
	projectService := service.NewProjectService(uow, nil)
	taskService := service.NewTaskService(uow)
	todoService := service.NewToDoService(uow)
	focusService := service.NewFocusSessionService(uow, nil)

	s.Router = apphttp.SetupRouterForTests(apphttp.RouterConfig{
		AuthHandler:         handler.NewAuthHandler(authService, lokiLogger),
		ProjectHandler:      handler.NewProjectHandler(projectService, lokiLogger, nil),
		TaskHandler:         handler.NewTaskHandler(taskService, lokiLogger, nil),
		ToDoHandler:         handler.NewToDoHandler(todoService, lokiLogger),
		FocusSessionHandler: handler.NewFocusSessionHandler(focusService, lokiLogger, nil),
		Hub:                 ws.NewHub(ws.NewRegistry(), nil),
		Tokens:              tokens,
	})
}

func (s *APISuite) TearDownTest() {
	test.TeardownTestDB(s.T(), s.DB)
}

func (s *APISuite) request(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *APISuite) envelope(rr *httptest.ResponseRecorder) response.Envelope {
	var envelope response.Envelope
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())
	return envelope
}

func (s *APISuite) register(username, email string) {
	body := fmt.Sprintf(`{"username": %q, "email": %q, "password": "secret123"}`, username, email)
	rr := s.request("POST", "/auth/register", body)
	Expect(rr.Code).To(Equal(http.StatusCreated))
}

func (s *APISuite) login(email string) *http.Cookie {
	body := fmt.Sprintf(`{"email": %q, "password": "secret123"}`, email)
	rr := s.request("POST", "/auth/login", body)
	Expect(rr.Code).To(Equal(http.StatusOK))

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}

	s.T().Fatal("login response carries no auth cookie")
	return nil
}

func (s *APISuite) TestRegisterSuccess() {
	rr := s.request("POST", "/auth/register", `{"username": "alice", "email": "alice@example.com", "password": "secret123"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	envelope := s.envelope(rr)
	Expect(envelope.Success).To(BeTrue())
	Expect(envelope.Error).To(BeNil())

	data := envelope.Data.(map[string]any)
	Expect(data["email"]).To(Equal("alice@example.com"))
	Expect(data["username"]).To(Equal("alice"))
	Expect(data["id"]).ToNot(BeEmpty())
}

func (s *APISuite) TestRegisterDuplicateEmail() {
	s.register("alice", "alice@example.com")

	rr := s.request("POST", "/auth/register", `{"username": "alice2", "email": "alice@example.com", "password": "secret123"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	envelope := s.envelope(rr)
	Expect(envelope.Success).To(BeFalse())
	Expect(envelope.Error).ToNot(BeNil())
	Expect(envelope.Error.Type).To(Equal("already_exists"))
}

func (s *APISuite) TestRegisterPayloadValidation() {
	rr := s.request("POST", "/auth/register", `{"username": "al", "email": "not-an-email", "password": "123"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	envelope := s.envelope(rr)
	Expect(envelope.Success).To(BeFalse())
	Expect(envelope.Error.Type).To(Equal("validation_error"))
}

func (s *APISuite) TestLoginSetsCookie() {
	s.register("alice", "alice@example.com")

	cookie := s.login("alice@example.com")

	Expect(cookie.Value).ToNot(BeEmpty())
	Expect(cookie.HttpOnly).To(BeTrue())
}

// A wrong password and an unknown email produce the same response.
func (s *APISuite) TestLoginRejections() {
	s.register("alice", "alice@example.com")

	for _, body := range []string{
		`{"email": "alice@example.com", "password": "wrong9999"}`,
		`{"email": "nobody@example.com", "password": "secret123"}`,
	} {
		rr := s.request("POST", "/auth/login", body)

		Expect(rr.Code).To(Equal(http.StatusUnauthorized))

		envelope := s.envelope(rr)
		Expect(envelope.Message).To(Equal("Invalid email or password"))
	}
}

func (s *APISuite) TestProtectedRouteWithoutCookie() {
	rr := s.request("GET", "/project", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *APISuite) TestProjectAndTaskFlow() {
	s.register("alice", "alice@example.com")
	cookie := s.login("alice@example.com")

	rr := s.request("POST", "/project", `{"title": "Deep Work", "color": "#3fb27f"}`, cookie)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	project := s.envelope(rr).Data.(map[string]any)
	projectID := project["id"].(string)
	Expect(project["active"]).To(BeTrue())

	rr = s.request("POST", "/task/"+projectID, `{"title": "Write chapter"}`, cookie)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	task := s.envelope(rr).Data.(map[string]any)
	taskID := task["id"].(string)

	rr = s.request("GET", "/project/"+projectID, "", cookie)
	Expect(rr.Code).To(Equal(http.StatusOK))

	detail := s.envelope(rr).Data.(map[string]any)
	Expect(detail["project"].(map[string]any)["id"]).To(Equal(projectID))
	Expect(detail["tasks"].([]any)).To(HaveLen(1))

	// An unrecognized target status is rejected with a validation envelope.
	rr = s.request("PUT", "/task/"+projectID+"/"+taskID+"/status", `{"status": "archived"}`, cookie)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(s.envelope(rr).Error.Type).To(Equal("validation_error"))

	rr = s.request("PUT", "/task/"+projectID+"/"+taskID+"/status", `{"status": "completed"}`, cookie)
	Expect(rr.Code).To(Equal(http.StatusOK))

	completed := s.envelope(rr).Data.(map[string]any)
	Expect(completed["completed_at"]).ToNot(BeNil())
}

func (s *APISuite) TestForeignProjectIsHidden() {
	s.register("alice", "alice@example.com")
	s.register("bob", "bob@example.com")

	aliceCookie := s.login("alice@example.com")

	rr := s.request("POST", "/project", `{"title": "Deep Work", "color": "#3fb27f"}`, aliceCookie)
	projectID := s.envelope(rr).Data.(map[string]any)["id"].(string)

	bobCookie := s.login("bob@example.com")

	rr = s.request("GET", "/project/"+projectID, "", bobCookie)

	Expect(rr.Code).To(Equal(http.StatusForbidden))
	Expect(s.envelope(rr).Error.Type).To(Equal("authorization_error"))
}

func (s *APISuite) TestFocusSessionSave() {
	s.register("alice", "alice@example.com")
	cookie := s.login("alice@example.com")

	rr := s.request("POST", "/project", `{"title": "Deep Work", "color": "#3fb27f"}`, cookie)
	projectID := s.envelope(rr).Data.(map[string]any)["id"].(string)

	body := fmt.Sprintf(`{"project_id": %q, "started_at": "2026-09-01T09:00:00Z", "duration_seconds": 1500}`, projectID)
	rr = s.request("POST", "/focus_session/save", body, cookie)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	session := s.envelope(rr).Data.(map[string]any)
	Expect(session["duration_seconds"]).To(BeNumerically("==", 1500))
}

func (s *APISuite) TestHealthz() {
	rr := s.request("GET", "/healthz", "")

	Expect(rr.Code).To(Equal(http.StatusOK))
}
