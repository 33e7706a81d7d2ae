// Package session runs the interactive users screen: the table, the form and
// the per-row actions, driven one operator choice at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"userdesk/internal/client/controller"
	"userdesk/internal/client/prompt"
	"userdesk/internal/client/view"
)

// ActionSource lists the row triggers currently on screen.
type ActionSource interface {
	Actions() []view.Action
}

type itemKind int

const (
	itemSubmit itemKind = iota
	itemEdit
	itemDelete
	itemCancel
	itemRefresh
	itemQuit
)

type menuItem struct {
	label string
	kind  itemKind
	id    int64
}

type Session struct {
	ctrl   *controller.Controller
	rows   ActionSource
	driver prompt.Driver
	logger *slog.Logger
}

func New(ctrl *controller.Controller, rows ActionSource, driver prompt.Driver, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{ctrl: ctrl, rows: rows, driver: driver, logger: logger}
}

// Run loads the table and then serves operator actions until Quit, an
// interrupt or a prompt failure. Operation failures are shown and the loop
// goes on.
func (s *Session) Run(ctx context.Context) error {
	_ = s.ctrl.List(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		items := s.menu()
		labels := make([]string, len(items))
		for i, it := range items {
			labels[i] = it.label
		}
		idx, err := s.driver.Select(ctx, "Choose an action", labels)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		}
		if idx < 0 || idx >= len(items) {
			continue
		}
		quit, err := s.dispatch(ctx, items[idx])
		if quit {
			return nil
		}
		var opErr *controller.OperationError
		if err != nil && !errors.As(err, &opErr) {
			return err
		}
	}
}

func (s *Session) menu() []menuItem {
	submit := s.ctrl.Caption() + "..."
	if id, ok := s.ctrl.EditingID(); ok {
		submit = fmt.Sprintf("%s #%d...", s.ctrl.Caption(), id)
	}
	items := []menuItem{{label: submit, kind: itemSubmit}}
	for _, a := range s.rows.Actions() {
		kind := itemEdit
		if a.Kind == view.ActionDelete {
			kind = itemDelete
		}
		items = append(items, menuItem{label: a.Label(), kind: kind, id: a.ID})
	}
	if _, ok := s.ctrl.EditingID(); ok {
		items = append(items, menuItem{label: "Cancel editing", kind: itemCancel})
	}
	return append(items,
		menuItem{label: "Refresh", kind: itemRefresh},
		menuItem{label: "Quit", kind: itemQuit},
	)
}

func (s *Session) dispatch(ctx context.Context, it menuItem) (bool, error) {
	switch it.kind {
	case itemSubmit:
		return false, s.fillAndSubmit(ctx)
	case itemEdit:
		return false, s.ctrl.BeginEdit(ctx, it.id)
	case itemDelete:
		return false, s.ctrl.Delete(ctx, it.id)
	case itemCancel:
		s.ctrl.Cancel()
	case itemRefresh:
		return false, s.ctrl.List(ctx)
	case itemQuit:
		return true, nil
	}
	return false, nil
}

// fillAndSubmit asks for every field, pre-filled with the form's values.
// An interrupted prompt goes back to the menu and keeps what was typed.
func (s *Session) fillAndSubmit(ctx context.Context) error {
	f := s.ctrl.Form()
	fields := []struct {
		label string
		value *string
	}{
		{"Name", &f.Name},
		{"Email", &f.Email},
		{"Age", &f.Age},
	}
	for _, fld := range fields {
		v, err := s.driver.Input(ctx, fld.label, *fld.value)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				s.ctrl.SetForm(f)
				s.logger.Debug("form entry interrupted")
				return nil
			}
			return err
		}
		*fld.value = v
	}
	s.ctrl.SetForm(f)
	return s.ctrl.Submit(ctx)
}
