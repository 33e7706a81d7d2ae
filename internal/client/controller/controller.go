// Package controller keeps the user form, the edit state and the rendered
// table in step with the remote users collection.
//
// Every operation makes at most one mutating remote call and then updates
// local state; after each successful mutation the collection is fetched again
// and re-rendered in full. Failures are shown to the operator through the
// Prompter and returned as *OperationError.
//
// A Controller is not safe for concurrent use.
package controller

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"userdesk/internal/shared/models"
)

// Operator-facing failure phrases.
const (
	PhraseLoad     = "loading error"
	PhraseNotFound = "user not found"
	PhraseCreate   = "creation error"
	PhraseUpdate   = "update error"
	PhraseDelete   = "deletion error"
)

// Form captions.
const (
	CaptionCreate = "Create user"
	CaptionEdit   = "Edit user"
)

// ConfirmDelete is the question asked before a delete.
const ConfirmDelete = "Delete user?"

// UsersAPI is the remote collection.
type UsersAPI interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, in models.UserInput) error
	Update(ctx context.Context, id int64, in models.UserInput) error
	Delete(ctx context.Context, id int64) error
}

// Renderer replaces the displayed table with users.
type Renderer interface {
	Render(users []models.User)
}

// Prompter asks blocking yes/no questions and shows failures.
type Prompter interface {
	Confirm(message string) bool
	Notify(message string)
}

// Form holds the field values exactly as the operator entered them.
type Form struct {
	ID    string
	Name  string
	Email string
	Age   string
}

type Controller struct {
	api    UsersAPI
	view   Renderer
	prompt Prompter
	logger *slog.Logger

	editingID *int64
	form      Form
	caption   string
}

func New(api UsersAPI, view Renderer, prompt Prompter, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{api: api, view: view, prompt: prompt, logger: logger, caption: CaptionCreate}
}

// EditingID reports the id of the record loaded into the form, if any.
func (c *Controller) EditingID() (int64, bool) {
	if c.editingID == nil {
		return 0, false
	}
	return *c.editingID, true
}

func (c *Controller) Form() Form { return c.form }

func (c *Controller) Caption() string { return c.caption }

// SetForm records operator edits. The ID field is owned by the controller
// and is left as it is.
func (c *Controller) SetForm(f Form) {
	f.ID = c.form.ID
	c.form = f
}

// List fetches the collection and renders it. On failure the previous table
// stays on screen.
func (c *Controller) List(ctx context.Context) error {
	users, err := c.api.List(ctx)
	if err != nil {
		return c.fail(OpList, PhraseLoad, err)
	}
	c.view.Render(users)
	return nil
}

// BeginEdit loads the user into the form and switches to edit mode.
func (c *Controller) BeginEdit(ctx context.Context, id int64) error {
	u, err := c.api.Get(ctx, id)
	if err != nil {
		return c.fail(OpGet, PhraseNotFound, err)
	}
	c.form = Form{
		ID:    strconv.FormatInt(id, 10),
		Name:  u.Name,
		Email: u.Email,
		Age:   strconv.Itoa(u.Age),
	}
	c.editingID = &id
	c.caption = CaptionEdit
	return nil
}

// Delete removes the user after the operator confirms. A declined
// confirmation makes no remote call and returns nil.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if !c.prompt.Confirm(ConfirmDelete) {
		c.logger.Debug("delete declined", "id", id)
		return nil
	}
	if err := c.api.Delete(ctx, id); err != nil {
		return c.fail(OpDelete, PhraseDelete, err)
	}
	return c.List(ctx)
}

// Submit creates a user when nothing is being edited and updates the edited
// user otherwise. On failure the form keeps its values so the operator can
// retry.
func (c *Controller) Submit(ctx context.Context) error {
	in := c.input()
	if id, ok := c.EditingID(); ok {
		if err := c.api.Update(ctx, id, in); err != nil {
			return c.fail(OpUpdate, PhraseUpdate, err)
		}
	} else {
		if err := c.api.Create(ctx, in); err != nil {
			return c.fail(OpCreate, PhraseCreate, err)
		}
	}
	c.reset()
	return c.List(ctx)
}

// Cancel leaves edit mode and clears the form. It never fails.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.form = Form{}
	c.editingID = nil
	c.caption = CaptionCreate
}

func (c *Controller) input() models.UserInput {
	return models.UserInput{
		Name:  c.form.Name,
		Email: c.form.Email,
		Age:   ParseAge(c.form.Age),
	}
}

// ParseAge reads a decimal age like parseInt: leading digits count and
// trailing garbage is dropped ("42abc" is 42).
// Input with no leading number yields nil, which is sent as JSON null and
// left for the server to reject.
func ParseAge(s string) *int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

func (c *Controller) fail(op Op, phrase string, err error) error {
	c.logger.Debug("operation failed", "op", op, "error", err)
	c.prompt.Notify(phrase)
	return &OperationError{Op: op, Phrase: phrase, Err: err}
}
