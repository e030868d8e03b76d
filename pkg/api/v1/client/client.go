// Package client provides the API client for interacting with the Taskboard API
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/celestiaorg/taskboard/internal/session"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
	"github.com/celestiaorg/taskboard/pkg/api/v1/routes"
	"github.com/celestiaorg/taskboard/pkg/models"
	"github.com/celestiaorg/taskboard/pkg/types"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client.
//
// Calls answered with a redirect return the redirect target.
type Client interface {
	// Public Endpoints
	HealthCheck(ctx context.Context) (map[string]string, error)
	Home(ctx context.Context) (types.HomeResponse, error)
	Login(ctx context.Context, params handlers.LoginParams) (string, error)
	LoginAsGuest(ctx context.Context) (string, error)
	Logout(ctx context.Context) (string, error)

	// User Endpoints
	Register(ctx context.Context, params handlers.RegisterParams) (string, error)
	ListUsers(ctx context.Context, page int) (types.UserList, error)

	// Project Endpoints
	ListProjects(ctx context.Context, page int) (types.ProjectList, error)
	CreateProject(ctx context.Context, params handlers.ProjectParams) (string, error)
	GetProject(ctx context.Context, id uint) (types.ProjectDetailResponse, error)
	GetProjectForm(ctx context.Context, id uint) (handlers.ProjectParams, error)
	UpdateProject(ctx context.Context, id uint, params handlers.ProjectParams) (string, error)
	DeleteProject(ctx context.Context, id uint) (string, error)

	// Task Endpoints
	ListTasks(ctx context.Context, sortBy models.TaskOrder, page int) (types.TaskList, error)
	OrderTasksBy(ctx context.Context, sortBy models.TaskOrder) (string, error)
	GetTask(ctx context.Context, id uint) (types.TaskDetailResponse, error)
	AddComment(ctx context.Context, taskID uint, params handlers.CommentParams) (string, error)
	MarkMyTask(ctx context.Context, id uint) (string, error)
	MarkTask(ctx context.Context, id uint) (string, error)
	GetNewTaskForm(ctx context.Context, projectID uint) (types.TaskFormResponse, error)
	CreateTask(ctx context.Context, projectID uint, params handlers.TaskParams) (string, error)
	GetTaskForm(ctx context.Context, id uint) (types.TaskFormResponse, error)
	UpdateTask(ctx context.Context, id uint, params handlers.TaskParams) (string, error)
	GetDueDateForm(ctx context.Context, id uint) (handlers.DueDateParams, error)
	UpdateDueDate(ctx context.Context, id uint, params handlers.DueDateParams) (string, error)
	DeleteTask(ctx context.Context, id uint) (string, error)

	// Comment Endpoints
	GetCommentForm(ctx context.Context, taskID, commentID uint) (handlers.CommentParams, error)
	UpdateComment(ctx context.Context, taskID, commentID uint, params handlers.CommentParams) (string, error)
	DeleteComment(ctx context.Context, taskID, commentID uint) (string, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface. It keeps the session cookie
// handed out at login and presents it on every later request.
type APIClient struct {
	baseURL string
	timeout time.Duration

	mu      sync.Mutex
	session string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (*APIClient, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// Error is a non-2xx answer from the server. Details holds the per-field
// messages of a rejected form.
type Error struct {
	Code    int
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(e.Message)
	for i, field := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s %s", field, e.Details[field])
	}
	return b.String()
}

// Unwrap exposes the status as a *fiber.Error
func (e *Error) Unwrap() error {
	return &fiber.Error{Code: e.Code, Message: e.Message}
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a server response
func StatusCode(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Accept", "application/json")
	if body != nil {
		agent.JSON(body)
	}

	c.mu.Lock()
	if c.session != "" {
		agent.Cookie(session.CookieName, c.session)
	}
	c.mu.Unlock()

	return agent, nil
}

// doRequest sends the request, records the session cookie and decodes the
// response into v. It returns the redirect target of 3xx responses.
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) (string, error) {
	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	agent.SetResponse(resp)

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("error sending request: %w", errs[0])
	}

	c.storeSession(&resp.Header)

	if statusCode >= 300 && statusCode < 400 {
		return string(resp.Header.Peek(fiber.HeaderLocation)), nil
	}

	if statusCode < 200 || statusCode >= 300 {
		apiErr := &Error{Code: statusCode, Message: string(body)}
		var errResp types.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Details = errResp.Details
		}
		return "", apiErr
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return "", fmt.Errorf("error decoding response: %w", err)
		}
	}
	return "", nil
}

func (c *APIClient) storeSession(header *fasthttp.ResponseHeader) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(session.CookieName)
	if !header.Cookie(cookie) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	expired := !cookie.Expire().Equal(fasthttp.CookieExpireUnlimited) && cookie.Expire().Before(time.Now())
	if expired || len(cookie.Value()) == 0 {
		c.session = ""
		return
	}
	c.session = string(cookie.Value())
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) (string, error) {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return "", err
	}
	return c.doRequest(agent, response)
}

func (c *APIClient) get(ctx context.Context, endpoint string, response interface{}) error {
	_, err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, response)
	return err
}

func pageQuery(page int) url.Values {
	if page <= 1 {
		return nil
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

// HealthCheck checks whether the server is up
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var resp map[string]string
	err := c.get(ctx, routes.BuildURL(handlers.RouteHealth, nil, nil), &resp)
	return resp, err
}

// Home fetches the landing page document
func (c *APIClient) Home(ctx context.Context) (types.HomeResponse, error) {
	var resp types.HomeResponse
	err := c.get(ctx, routes.HomeURL(), &resp)
	return resp, err
}

// Login starts a session for the given credentials
func (c *APIClient) Login(ctx context.Context, params handlers.LoginParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.BuildURL(handlers.RouteLogin, nil, nil), params, nil)
}

// LoginAsGuest starts a session for the shared guest account
func (c *APIClient) LoginAsGuest(ctx context.Context) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.BuildURL(handlers.RouteLoginGuest, nil, nil), nil, nil)
}

// Logout ends the current session
func (c *APIClient) Logout(ctx context.Context) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.BuildURL(handlers.RouteLogout, nil, nil), nil, nil)
}

// Register creates a user account. Admin only.
func (c *APIClient) Register(ctx context.Context, params handlers.RegisterParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.BuildURL(handlers.RouteRegister, nil, nil), params, nil)
}

// ListUsers lists user accounts. Admin only.
func (c *APIClient) ListUsers(ctx context.Context, page int) (types.UserList, error) {
	var resp types.UserList
	err := c.get(ctx, routes.BuildURL(handlers.RouteListUsers, nil, pageQuery(page)), &resp)
	return resp, err
}

// ListProjects lists the projects the current user collaborates on
func (c *APIClient) ListProjects(ctx context.Context, page int) (types.ProjectList, error) {
	var resp types.ProjectList
	err := c.get(ctx, routes.BuildURL(handlers.RouteCurrentUserProjects, nil, pageQuery(page)), &resp)
	return resp, err
}

// CreateProject creates a project owned by the current user
func (c *APIClient) CreateProject(ctx context.Context, params handlers.ProjectParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.BuildURL(handlers.RouteNewProject, nil, nil), params, nil)
}

// GetProject fetches a project with its tasks
func (c *APIClient) GetProject(ctx context.Context, id uint) (types.ProjectDetailResponse, error) {
	var resp types.ProjectDetailResponse
	err := c.get(ctx, routes.ShowProjectURL(id), &resp)
	return resp, err
}

// GetProjectForm fetches the editable fields of a project
func (c *APIClient) GetProjectForm(ctx context.Context, id uint) (handlers.ProjectParams, error) {
	var resp handlers.ProjectParams
	err := c.get(ctx, routes.IDURL(handlers.RouteEditProjectForm, id), &resp)
	return resp, err
}

// UpdateProject edits a project
func (c *APIClient) UpdateProject(ctx context.Context, id uint, params handlers.ProjectParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.IDURL(handlers.RouteEditProject, id), params, nil)
}

// DeleteProject deletes a project with its tasks and comments
func (c *APIClient) DeleteProject(ctx context.Context, id uint) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.IDURL(handlers.RouteDeleteProject, id), nil, nil)
}

// ListTasks lists one page of the open tasks assigned to the current user
func (c *APIClient) ListTasks(ctx context.Context, sortBy models.TaskOrder, page int) (types.TaskList, error) {
	q := pageQuery(page)
	if sortBy != "" {
		if q == nil {
			q = url.Values{}
		}
		q.Set("sort_by", string(sortBy))
	}
	var resp types.TaskList
	err := c.get(ctx, routes.BuildURL(handlers.RouteCurrentUserTasks, nil, q), &resp)
	return resp, err
}

// OrderTasksBy resolves one of the fixed task orderings to its list URL
func (c *APIClient) OrderTasksBy(ctx context.Context, sortBy models.TaskOrder) (string, error) {
	var route string
	switch sortBy {
	case models.TaskOrderDueDate:
		route = handlers.RouteOrderTasksByDueDate
	case models.TaskOrderProject:
		route = handlers.RouteOrderTasksByProject
	case models.TaskOrderCreator:
		route = handlers.RouteOrderTasksByCreator
	default:
		return "", fmt.Errorf("unknown task order %q", sortBy)
	}
	return c.executeRequest(ctx, http.MethodGet, routes.BuildURL(route, nil, nil), nil, nil)
}

// GetTask fetches a task with its project and comments
func (c *APIClient) GetTask(ctx context.Context, id uint) (types.TaskDetailResponse, error) {
	var resp types.TaskDetailResponse
	err := c.get(ctx, routes.ShowTaskURL(id), &resp)
	return resp, err
}

// AddComment comments on a task
func (c *APIClient) AddComment(ctx context.Context, taskID uint, params handlers.CommentParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.IDURL(handlers.RouteAddComment, taskID), params, nil)
}

// MarkMyTask toggles the completion of a task assigned to the current user
func (c *APIClient) MarkMyTask(ctx context.Context, id uint) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.IDURL(handlers.RouteMarkMyTask, id), nil, nil)
}

// MarkTask toggles the completion of any task in a shared project
func (c *APIClient) MarkTask(ctx context.Context, id uint) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.IDURL(handlers.RouteMarkTask, id), nil, nil)
}

// GetNewTaskForm fetches the assignee choices for a new task
func (c *APIClient) GetNewTaskForm(ctx context.Context, projectID uint) (types.TaskFormResponse, error) {
	var resp types.TaskFormResponse
	err := c.get(ctx, routes.IDURL(handlers.RouteNewTaskForm, projectID), &resp)
	return resp, err
}

// CreateTask adds a task to a project
func (c *APIClient) CreateTask(ctx context.Context, projectID uint, params handlers.TaskParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.IDURL(handlers.RouteNewTask, projectID), params, nil)
}

// GetTaskForm fetches a task and its assignee choices for editing
func (c *APIClient) GetTaskForm(ctx context.Context, id uint) (types.TaskFormResponse, error) {
	var resp types.TaskFormResponse
	err := c.get(ctx, routes.IDURL(handlers.RouteEditTaskForm, id), &resp)
	return resp, err
}

// UpdateTask edits a task
func (c *APIClient) UpdateTask(ctx context.Context, id uint, params handlers.TaskParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.IDURL(handlers.RouteEditTask, id), params, nil)
}

// GetDueDateForm fetches the current due date of a task
func (c *APIClient) GetDueDateForm(ctx context.Context, id uint) (handlers.DueDateParams, error) {
	var resp handlers.DueDateParams
	err := c.get(ctx, routes.IDURL(handlers.RouteEditDueDateForm, id), &resp)
	return resp, err
}

// UpdateDueDate moves the due date of a task assigned to the current user
func (c *APIClient) UpdateDueDate(ctx context.Context, id uint, params handlers.DueDateParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.IDURL(handlers.RouteEditDueDate, id), params, nil)
}

// DeleteTask deletes a task with its comments
func (c *APIClient) DeleteTask(ctx context.Context, id uint) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.IDURL(handlers.RouteDeleteTask, id), nil, nil)
}

// GetCommentForm fetches the text of a comment written by the current user
func (c *APIClient) GetCommentForm(ctx context.Context, taskID, commentID uint) (handlers.CommentParams, error) {
	var resp handlers.CommentParams
	err := c.get(ctx, routes.CommentURL(handlers.RouteEditCommentForm, taskID, commentID), &resp)
	return resp, err
}

// UpdateComment edits a comment written by the current user
func (c *APIClient) UpdateComment(ctx context.Context, taskID, commentID uint, params handlers.CommentParams) (string, error) {
	return c.executeRequest(ctx, http.MethodPost, routes.CommentURL(handlers.RouteEditComment, taskID, commentID), params, nil)
}

// DeleteComment deletes a comment written by the current user
func (c *APIClient) DeleteComment(ctx context.Context, taskID, commentID uint) (string, error) {
	return c.executeRequest(ctx, http.MethodGet, routes.CommentURL(handlers.RouteDeleteComment, taskID, commentID), nil, nil)
}
