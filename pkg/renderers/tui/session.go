package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

type session struct {
	renderer *Renderer
	form     *form.Form
	driver   *form.Driver
}

// ask prompts for ctl until its value passes validation or the attempts run
// out.
func (s *session) ask(ctx context.Context, ctl form.Control) error {
	r := s.renderer
	for attempt := 1; ; attempt++ {
		msg, err := s.prompt(ctx, ctl)
		if err != nil {
			return err
		}
		if msg == "" {
			msg = s.form.Engine().Error(ctl.Field.Name)
		}
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.Error.Render(msg)); err != nil {
			return err
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s: %s", ErrTooManyAttempts, ctl.Field.Name, msg)
		}
	}
}

// prompt asks once and dispatches the answer. The returned message reports
// input the control cannot accept.
func (s *session) prompt(ctx context.Context, ctl form.Control) (string, error) {
	field := ctl.Field
	value := s.form.Engine().Value(field.Name)
	if field.Value != nil {
		value = field.Value
	}
	message := promptMessage(field)
	help := field.HelperMessage
	driver := s.renderer.driver

	switch kindOf(ctl) {
	case controls.KindText:
		ans, err := driver.Input(ctx, InputConfig{Message: message, Default: controls.Text(value), Help: help})
		if err != nil {
			return "", err
		}
		return "", s.driver.Set(ctl, ans)

	case controls.KindTextarea:
		ans, err := driver.TextArea(ctx, TextAreaConfig{Message: message, Default: controls.Text(value), Help: help})
		if err != nil {
			return "", err
		}
		return "", s.driver.Set(ctl, ans)

	case controls.KindNumber:
		opts, _ := ctl.Resolution.Options.(*model.NumberOptions)
		ans, err := driver.Input(ctx, InputConfig{Message: message, Default: controls.FormatNumber(value, opts), Help: numberHelp(help, opts)})
		if err != nil {
			return "", err
		}
		return "", s.driver.Set(ctl, ans)

	case controls.KindDatepicker:
		opts, _ := ctl.Resolution.Options.(*model.DatepickerOptions)
		ans, err := driver.Input(ctx, InputConfig{
			Message: message,
			Default: controls.FormatDate(value, opts),
			Help:    strings.TrimSpace(help + " (" + opts.Layout() + ")"),
		})
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(ans) != "" {
			if _, ok := controls.ParseDate(ans, opts); !ok {
				return "Invalid date, expected " + opts.Layout(), nil
			}
		}
		return "", s.driver.Set(ctl, ans)

	case controls.KindCheckbox, controls.KindSwitch:
		ans, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: controls.Bool(value), Help: help})
		if err != nil {
			return "", err
		}
		return "", s.driver.Set(ctl, ans)

	case controls.KindSelect:
		return "", s.promptSelect(ctx, ctl, message, help, value)
	}
	return "", nil
}

func (s *session) promptSelect(ctx context.Context, ctl form.Control, message, help string, value any) error {
	opts, _ := ctl.Resolution.Options.(*model.SelectOptions)
	if opts == nil || len(opts.Items) == 0 {
		return nil
	}
	labels := make([]string, len(opts.Items))
	current := make(map[string]bool)
	for _, item := range controls.Selection(value, opts.Items) {
		current[item.Value] = true
	}
	var defaults []int
	for i, item := range opts.Items {
		labels[i] = item.Label
		if current[item.Value] {
			defaults = append(defaults, i)
		}
	}

	var chosen []int
	driver := s.renderer.driver
	if opts.Single {
		def := -1
		if len(defaults) > 0 {
			def = defaults[0]
		}
		idx, err := driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, Help: help})
		if err != nil {
			return err
		}
		chosen = []int{idx}
	} else {
		indices, err := driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: -1, Defaults: defaults, Help: help})
		if err != nil {
			return err
		}
		chosen = indices
	}

	values := make([]string, 0, len(chosen))
	for _, idx := range chosen {
		if idx >= 0 && idx < len(opts.Items) {
			values = append(values, opts.Items[idx].Value)
		}
	}
	return s.driver.Select(ctl, values...)
}

func numberHelp(help string, opts *model.NumberOptions) string {
	if opts == nil || (opts.Min == nil && opts.Max == nil) {
		return help
	}
	lo, hi := "-inf", "+inf"
	if opts.Min != nil {
		lo = strconv.FormatFloat(*opts.Min, 'f', -1, 64)
	}
	if opts.Max != nil {
		hi = strconv.FormatFloat(*opts.Max, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprintf("%s [%s, %s]", help, lo, hi))
}
