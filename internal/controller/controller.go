// Package controller runs the interaction loop for one client's forms:
// field validation on blur, debounced strength updates on input,
// password visibility toggling and the simulated submission lifecycle.
//
// All handler execution happens on a single goroutine. Triggers enqueue
// work; each task runs to completion before the next, so handlers never
// observe each other mid-flight. Timer continuations (submit delay,
// redirect, debounce) go through the keyed scheduler and re-enqueue onto
// the same loop.
package controller

import (
	"context"
	"log/slog"

	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/notify"
	"github.com/nfrund/formwire/internal/pubsub"
	"github.com/nfrund/formwire/internal/schedule"
	"github.com/nfrund/formwire/internal/surface"
	"github.com/nfrund/formwire/internal/topics"
	"github.com/nfrund/formwire/internal/validation"
)

// Submit control presentation while a submission is processing.
const (
	ClassLoading = "is-loading"
	AttrDisabled = "disabled"
)

// taskBuffer is the trigger queue depth. Triggers beyond it block the
// caller until the loop catches up.
const taskBuffer = 128

// Dependencies holds all the services a Controller requires to operate.
// This struct is used for constructor injection to make dependencies
// explicit.
type Dependencies struct {
	Surface   surface.Surface
	Forms     *forms.Store
	Engine    *validation.Engine
	Notifier  *notify.Notifier
	Scheduler *schedule.Scheduler

	// Publisher mirrors interaction outcomes onto the event bus. Nil
	// disables mirroring; surface updates still happen.
	Publisher pubsub.Publisher

	// ClientID identifies the client this controller serves, for
	// addressed notices and event payloads.
	ClientID string
}

// Controller owns one client's form interaction state.
type Controller struct {
	surface   surface.Surface
	forms     *forms.Store
	engine    *validation.Engine
	notifier  *notify.Notifier
	scheduler *schedule.Scheduler
	publisher pubsub.Publisher
	clientID  string

	tasks chan func()
	done  chan struct{}
	ctx   context.Context

	// busy tracks forms that are mid-submission. Owned by the loop
	// goroutine; no locking.
	busy map[string]bool

	fieldValidated  pubsub.Event[FieldEvent]
	strengthChanged pubsub.Event[StrengthEvent]
	submitStarted   pubsub.Event[SubmitEvent]
	submitFinished  pubsub.Event[SubmitEvent]
}

// New creates a Controller. Run must be called for triggers to have any
// effect.
func New(deps Dependencies) *Controller {
	return &Controller{
		surface:   deps.Surface,
		forms:     deps.Forms,
		engine:    deps.Engine,
		notifier:  deps.Notifier,
		scheduler: deps.Scheduler,
		publisher: deps.Publisher,
		clientID:  deps.ClientID,

		tasks: make(chan func(), taskBuffer),
		done:  make(chan struct{}),
		busy:  make(map[string]bool),

		fieldValidated:  pubsub.NewEvent[FieldEvent](topics.FieldValidated),
		strengthChanged: pubsub.NewEvent[StrengthEvent](topics.StrengthChanged),
		submitStarted:   pubsub.NewEvent[SubmitEvent](topics.SubmitStarted),
		submitFinished:  pubsub.NewEvent[SubmitEvent](topics.SubmitFinished),
	}
}

// Run processes triggers until the context is cancelled. It must run in
// its own goroutine; every handler executes here.
func (c *Controller) Run(ctx context.Context) {
	c.ctx = ctx
	defer close(c.done)

	slog.Debug("Interaction loop started", "client_id", c.clientID)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Interaction loop stopped", "client_id", c.clientID)
			return
		case task := <-c.tasks:
			task()
		}
	}
}

// enqueue hands a task to the loop. After shutdown tasks are dropped.
func (c *Controller) enqueue(task func()) {
	select {
	case c.tasks <- task:
	case <-c.done:
	}
}

// FieldBlurred reports that a field lost focus. The field is validated
// against its form's rules and the outcome presented on the surface.
func (c *Controller) FieldBlurred(formID, field string) {
	c.enqueue(func() { c.handleFieldBlurred(formID, field) })
}

// InputChanged reports a keystroke-level change. For fields with a
// strength meter this debounces a meter update; the quiet period is the
// form's debounce interval and re-triggering resets it (last write wins).
func (c *Controller) InputChanged(formID, field string) {
	c.enqueue(func() { c.handleInputChanged(formID, field) })
}

// SubmitRequested reports activation of a form's submit control.
func (c *Controller) SubmitRequested(formID string) {
	c.enqueue(func() { c.handleSubmit(formID) })
}

// ToggleVisibility reports a click on a password field's visibility
// toggle.
func (c *Controller) ToggleVisibility(formID, field string) {
	c.enqueue(func() { c.handleToggle(formID, field) })
}

// --- Handlers (loop goroutine only) ---

func (c *Controller) handleFieldBlurred(formID, field string) {
	spec, found := c.forms.Get(formID)
	if !found {
		slog.Debug("Blur for unknown form", "form", formID, "field", field)
		return
	}

	res := c.engine.Field(c.ctx, c.surface, spec, field)

	c.publishFieldValidated(FieldEvent{
		ClientID: c.clientID,
		Form:     formID,
		Field:    field,
		Valid:    res.Valid,
		Message:  res.Message,
	})
}

func (c *Controller) handleInputChanged(formID, field string) {
	spec, found := c.forms.Get(formID)
	if !found {
		return
	}
	fld, found := spec.Field(field)
	if !found || !fld.Meter {
		return
	}

	// One meter per form; rescheduling the same key resets the quiet
	// period.
	c.scheduler.Schedule(formID+"/strength", spec.DebounceInterval, func() {
		c.enqueue(func() { c.updateStrength(spec, fld) })
	})
}

func (c *Controller) handleSubmit(formID string) {
	spec, found := c.forms.Get(formID)
	if !found {
		slog.Debug("Submit for unknown form", "form", formID)
		return
	}
	if c.busy[formID] {
		slog.Debug("Submit ignored, form is busy", "form", formID)
		return
	}

	if !c.engine.Form(c.ctx, c.surface, spec) {
		c.notifier.Error(c.ctx, c.clientID, "Please correct the errors in the form.")
		return
	}

	c.busy[formID] = true
	c.setBusy(spec, true)
	c.publishSubmit(c.submitStarted, formID)

	c.scheduler.Schedule(formID+"/submit", spec.SubmitDelay, func() {
		c.enqueue(func() { c.finishSubmit(spec) })
	})
}

// finishSubmit ends the simulated processing: the button returns to
// idle, the success notice shows and an optional redirect is scheduled.
func (c *Controller) finishSubmit(spec forms.FormSpec) {
	c.busy[spec.ID] = false
	c.setBusy(spec, false)
	c.publishSubmit(c.submitFinished, spec.ID)

	if spec.SuccessMessage != "" {
		c.notifier.Success(c.ctx, c.clientID, spec.SuccessMessage)
	}

	if spec.RedirectURL != "" && spec.RedirectDelay > 0 {
		url := spec.RedirectURL
		c.scheduler.Schedule(spec.ID+"/redirect", spec.RedirectDelay, func() {
			c.enqueue(func() { c.surface.Navigate(url) })
		})
	}
}

// setBusy moves the submit control between Idle and Busy. Those are the
// only two states; validation failure never reaches here.
func (c *Controller) setBusy(spec forms.FormSpec, busy bool) {
	node := spec.SubmitNode
	if busy {
		c.surface.AddClass(node, ClassLoading)
		c.surface.SetAttr(node, AttrDisabled, "disabled")
		c.surface.SetText(node, spec.BusyLabel)
		return
	}
	c.surface.RemoveClass(node, ClassLoading)
	c.surface.RemoveAttr(node, AttrDisabled)
	c.surface.SetText(node, spec.SubmitLabel)
}
