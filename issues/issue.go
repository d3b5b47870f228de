package issues

import (
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/internal/utils"
)

type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "InProgress"
	StatusCheck      Status = "Check"
	StatusDone       Status = "Done"
	StatusCancelled  Status = "Cancelled"
	StatusBlocked    Status = "Blocked"
)

var statuses = []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusCheck, StatusDone, StatusCancelled, StatusBlocked}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	for _, v := range priorities {
		if v == p {
			return true
		}
	}
	return false
}

type Tag struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	WorkspaceID int       `json:"workspace_id"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Color       *string   `json:"color,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Issue struct {
	ID          int       `json:"id"`
	CustomID    string    `json:"custom_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Version     int       `json:"version"`
	WorkspaceID int       `json:"workspace_id"`
	Tags        []Tag     `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasDueDate is false for the backend's zero date (0001-01-01T00:00:00Z).
func (i Issue) HasDueDate() bool {
	return !i.DueDate.IsZero()
}

// UpdateRequest builds the PATCH body that writes the editable fields of i back.
func (i Issue) UpdateRequest() UpdateIssue {
	u := UpdateIssue{
		Title:       i.Title,
		Description: i.Description,
		Status:      i.Status,
		Priority:    i.Priority,
	}
	if i.HasDueDate() {
		u.DueDate = utils.Ptr(i.DueDate.UTC().Format(time.RFC3339))
	}
	return u
}

type CreateIssue struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	TagIDs      []int      `json:"tag_ids,omitempty"`
	ProjectID   *int       `json:"project_id,omitempty"`
}

func (c CreateIssue) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "title is required")
	}
	if !c.Status.Valid() {
		return errors.Wrapf(errors.ErrInvalidRequest, "unknown status %q", c.Status)
	}
	if !c.Priority.Valid() {
		return errors.Wrapf(errors.ErrInvalidRequest, "unknown priority %q", c.Priority)
	}
	return nil
}

type UpdateIssue struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"dueDate,omitempty"`
}

func (u UpdateIssue) Validate() error {
	if strings.TrimSpace(u.Title) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "title is required")
	}
	if !u.Status.Valid() {
		return errors.Wrapf(errors.ErrInvalidRequest, "unknown status %q", u.Status)
	}
	if !u.Priority.Valid() {
		return errors.Wrapf(errors.ErrInvalidRequest, "unknown priority %q", u.Priority)
	}
	if u.DueDate != nil {
		if _, err := time.Parse(time.RFC3339Nano, *u.DueDate); err != nil {
			return errors.Wrapf(errors.ErrInvalidRequest, "dueDate %q", utils.Value(u.DueDate))
		}
	}
	return nil
}

func (u UpdateIssue) String() string {
	return fmt.Sprintf("%s [%s/%s]", u.Title, u.Status, u.Priority)
}
