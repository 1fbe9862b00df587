package controller_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/formwire/internal/controller"
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/notify"
	"github.com/nfrund/formwire/internal/pubsub"
	"github.com/nfrund/formwire/internal/schedule"
	"github.com/nfrund/formwire/internal/surface"
	"github.com/nfrund/formwire/internal/topics"
	"github.com/nfrund/formwire/internal/validation"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures notices shown during a test.
type recorder struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (r *recorder) Show(_ context.Context, _ string, notice notify.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
	return nil
}

func (r *recorder) snapshot() []notify.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

// capturePublisher records published messages by topic.
type capturePublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (c *capturePublisher) Publish(_ context.Context, msg pubsub.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) onTopic(topic string) []pubsub.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []pubsub.Message
	for _, msg := range c.msgs {
		if msg.Topic == topic {
			out = append(out, msg)
		}
	}
	return out
}

func (c *capturePublisher) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

// Short-delay variants of the built-in forms so tests finish quickly.

func testLoginSpec() forms.FormSpec {
	return forms.FormSpec{
		ID: "login",
		Fields: []forms.FieldSpec{
			{Name: "email", Kind: forms.KindEmail, Required: true},
			{Name: "password", Kind: forms.KindPassword, Required: true, PasswordRole: forms.RolePrimary, Toggle: true},
		},
		SubmitLabel:      "Sign In",
		BusyLabel:        "Signing in...",
		SubmitDelay:      40 * time.Millisecond,
		DebounceInterval: 25 * time.Millisecond,
		SuccessMessage:   "Login successful! Welcome back.",
	}.Normalize()
}

func testRegisterSpec() forms.FormSpec {
	return forms.FormSpec{
		ID: "register",
		Fields: []forms.FieldSpec{
			{Name: "email", Kind: forms.KindEmail, Required: true},
			{Name: "password", Kind: forms.KindPassword, Required: true, PasswordRole: forms.RolePrimary, Meter: true},
			{Name: "confirm_password", Kind: forms.KindPassword, Required: true, PasswordRole: forms.RoleConfirm},
			{Name: "terms", Kind: forms.KindCheckbox, Terms: true},
		},
		SubmitLabel:      "Create Account",
		BusyLabel:        "Creating account...",
		SubmitDelay:      40 * time.Millisecond,
		RedirectDelay:    25 * time.Millisecond,
		RedirectURL:      "/login",
		DebounceInterval: 25 * time.Millisecond,
		SuccessMessage:   "Account created successfully! Redirecting to login...",
	}.Normalize()
}

type fixture struct {
	ctl *controller.Controller
	mem *surface.Memory
	rec *recorder
	pub *capturePublisher
}

func start(t *testing.T, specs ...forms.FormSpec) *fixture {
	t.Helper()

	store := forms.NewStore(afero.NewMemMapFs(), "forms")
	var nodes []string
	for _, spec := range specs {
		require.NoError(t, store.Put(spec))
		nodes = append(nodes, spec.Nodes()...)
	}

	mem := surface.NewMemory(surface.WithNodes(nodes...))
	rec := &recorder{}
	pub := &capturePublisher{}
	scheduler := schedule.New()

	ctl := controller.New(controller.Dependencies{
		Surface:   mem,
		Forms:     store,
		Engine:    validation.New(),
		Notifier:  notify.New(rec),
		Scheduler: scheduler,
		Publisher: pub,
		ClientID:  "client-1",
	})

	ctx, cancel := context.WithCancel(context.Background())
	go ctl.Run(ctx)
	t.Cleanup(func() {
		cancel()
		scheduler.Stop()
	})

	return &fixture{ctl: ctl, mem: mem, rec: rec, pub: pub}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond, msg)
}

func TestFieldBlurValidates(t *testing.T) {
	f := start(t, testLoginSpec())
	f.mem.SetValue("login-email", "not-an-email")

	f.ctl.FieldBlurred("login", "email")

	// The published event is the handler's last effect; once it lands,
	// every surface write has happened.
	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.FieldValidated.Name())) == 1
	}, "validation event should publish")

	assert.True(t, f.mem.HasClass("login-email", validation.ClassInvalid))
	assert.Equal(t, validation.MsgEmail, f.mem.Text("login-email-feedback"))

	payload := string(f.pub.onTopic(topics.FieldValidated.Name())[0].Payload)
	assert.Contains(t, payload, `"valid":false`)
	assert.Contains(t, payload, `"field":"email"`)
}

func TestInputDebouncesStrengthMeter(t *testing.T) {
	f := start(t, testRegisterSpec())

	// Two quick keystrokes inside the quiet period: only the second
	// value may reach the meter.
	f.mem.SetValue("register-password", "abc")
	f.ctl.InputChanged("register", "password")
	f.mem.SetValue("register-password", "Abcdefg1")
	f.ctl.InputChanged("register", "password")

	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.StrengthChanged.Name())) == 1
	}, "exactly one meter update should fire")

	score, _ := f.mem.Attr("register-password-strength", controller.AttrStrengthScore)
	assert.Equal(t, "100", score)
	assert.True(t, f.mem.HasClass("register-password-strength", controller.ClassStrengthStrong))
	assert.False(t, f.mem.HasClass("register-password-strength", controller.ClassStrengthWeak))
	assert.Equal(t, "Strong password", f.mem.Text("register-password-strength-text"))

	payload := string(f.pub.onTopic(topics.StrengthChanged.Name())[0].Payload)
	assert.Contains(t, payload, `"score":100`)
	assert.Contains(t, payload, `"level":"strong"`)
}

func TestStrengthMeterShowsMissingRequirements(t *testing.T) {
	f := start(t, testRegisterSpec())

	f.mem.SetValue("register-password", "abcdefgh")
	f.ctl.InputChanged("register", "password")

	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.StrengthChanged.Name())) == 1
	}, "meter should update")

	score, _ := f.mem.Attr("register-password-strength", controller.AttrStrengthScore)
	assert.Equal(t, "50", score)
	assert.True(t, f.mem.HasClass("register-password-strength", controller.ClassStrengthMedium))
	assert.Equal(t,
		"Medium password: One uppercase letter, One number or special character",
		f.mem.Text("register-password-strength-text"))
}

func TestInputOnUnmeteredFieldDoesNothing(t *testing.T) {
	f := start(t, testLoginSpec())

	f.mem.SetValue("login-password", "Abcdefg1")
	f.ctl.InputChanged("login", "password")

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, f.pub.onTopic(topics.StrengthChanged.Name()))
}

func fillLogin(f *fixture) {
	f.mem.SetValue("login-email", "user@example.com")
	f.mem.SetValue("login-password", "Abcdefg1")
}

func TestSubmitLifecycle(t *testing.T) {
	f := start(t, testLoginSpec())
	fillLogin(f)

	f.ctl.SubmitRequested("login")

	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.SubmitStarted.Name())) == 1
	}, "submission should start")

	assert.True(t, f.mem.HasClass("login-submit", controller.ClassLoading))
	disabled, found := f.mem.Attr("login-submit", controller.AttrDisabled)
	assert.True(t, found)
	assert.Equal(t, "disabled", disabled)
	assert.Equal(t, "Signing in...", f.mem.Text("login-submit"))

	// The success notice is the completion handler's last effect before
	// any redirect scheduling.
	eventually(t, func() bool { return f.rec.count() == 1 }, "success notice should show")

	assert.False(t, f.mem.HasClass("login-submit", controller.ClassLoading))
	_, found = f.mem.Attr("login-submit", controller.AttrDisabled)
	assert.False(t, found)
	assert.Equal(t, "Sign In", f.mem.Text("login-submit"))
	assert.Len(t, f.pub.onTopic(topics.SubmitFinished.Name()), 1)

	notice := f.rec.snapshot()[0]
	assert.Equal(t, notify.SeveritySuccess, notice.Severity)
	assert.Equal(t, "Login successful! Welcome back.", notice.Message)

	assert.Empty(t, f.mem.Location(), "login does not navigate")
}

func TestSubmitValidationFailure(t *testing.T) {
	f := start(t, testLoginSpec())

	f.ctl.SubmitRequested("login")

	eventually(t, func() bool { return f.rec.count() == 1 }, "error notice should show")
	notice := f.rec.snapshot()[0]
	assert.Equal(t, notify.SeverityError, notice.Severity)

	assert.False(t, f.mem.HasClass("login-submit", controller.ClassLoading), "busy state never entered")
	assert.Empty(t, f.pub.onTopic(topics.SubmitStarted.Name()))
	assert.True(t, f.mem.HasClass("login-email", validation.ClassInvalid))
	assert.True(t, f.mem.HasClass("login-password", validation.ClassInvalid))
}

func TestSubmitWhileBusyIgnored(t *testing.T) {
	f := start(t, testLoginSpec())
	fillLogin(f)

	f.ctl.SubmitRequested("login")
	f.ctl.SubmitRequested("login")

	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.SubmitFinished.Name())) == 1
	}, "first submission should finish")

	time.Sleep(80 * time.Millisecond)
	assert.Len(t, f.pub.onTopic(topics.SubmitStarted.Name()), 1, "second submit must be ignored")
	assert.Len(t, f.pub.onTopic(topics.SubmitFinished.Name()), 1)
	assert.Equal(t, 1, f.rec.count())
}

func TestRegistrationRedirect(t *testing.T) {
	f := start(t, testRegisterSpec())
	f.mem.SetValue("register-email", "jane@example.com")
	f.mem.SetValue("register-password", "Abcdefg1")
	f.mem.SetValue("register-confirm_password", "Abcdefg1")
	f.mem.SetChecked("register-terms", true)

	f.ctl.SubmitRequested("register")

	eventually(t, func() bool {
		return f.mem.Location() == "/login"
	}, "redirect should navigate after the second delay")

	notices := f.rec.snapshot()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.SeveritySuccess, notices[0].Severity)
}

func TestUncheckedTermsBlocksSubmission(t *testing.T) {
	f := start(t, testRegisterSpec())
	f.mem.SetValue("register-email", "jane@example.com")
	f.mem.SetValue("register-password", "Abcdefg1")
	f.mem.SetValue("register-confirm_password", "Abcdefg1")

	f.ctl.SubmitRequested("register")

	eventually(t, func() bool { return f.rec.count() == 1 }, "error notice should show")
	assert.Equal(t, notify.SeverityError, f.rec.snapshot()[0].Severity)
	assert.True(t, f.mem.HasClass("register-terms", validation.ClassInvalid))
	assert.Empty(t, f.pub.onTopic(topics.SubmitStarted.Name()))
}

func TestToggleVisibility(t *testing.T) {
	f := start(t, testLoginSpec())

	f.ctl.ToggleVisibility("login", "password")

	// aria-pressed is the toggle handler's last write.
	eventually(t, func() bool {
		pressed, _ := f.mem.Attr("login-password-toggle", controller.AttrPressed)
		return pressed == "true"
	}, "first toggle should reveal")

	typ, _ := f.mem.Attr("login-password", controller.AttrType)
	assert.Equal(t, "text", typ)
	assert.True(t, f.mem.HasClass("login-password-toggle", controller.ClassToggleActive))

	f.ctl.ToggleVisibility("login", "password")

	eventually(t, func() bool {
		pressed, _ := f.mem.Attr("login-password-toggle", controller.AttrPressed)
		return pressed == "false"
	}, "second toggle should hide")

	typ, _ = f.mem.Attr("login-password", controller.AttrType)
	assert.Equal(t, "password", typ)
	assert.False(t, f.mem.HasClass("login-password-toggle", controller.ClassToggleActive))

	f.ctl.ToggleVisibility("login", "email")
	time.Sleep(30 * time.Millisecond)
	typ, _ = f.mem.Attr("login-email", controller.AttrType)
	assert.Empty(t, typ, "fields without a toggle are untouched")
}

func TestUnknownFormIgnored(t *testing.T) {
	f := start(t, testLoginSpec())

	f.ctl.SubmitRequested("ghost")
	f.ctl.FieldBlurred("ghost", "email")
	f.ctl.InputChanged("ghost", "email")

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, f.rec.count())
	assert.Zero(t, f.pub.total())
}

func TestRevalidationIsIdempotent(t *testing.T) {
	f := start(t, testLoginSpec())
	f.mem.SetValue("login-email", "user@example.com")

	f.ctl.FieldBlurred("login", "email")
	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.FieldValidated.Name())) == 1
	}, "first validation should run")

	require.True(t, f.mem.HasClass("login-email", validation.ClassValid))
	classes := f.mem.Classes("login-email")

	f.ctl.FieldBlurred("login", "email")
	eventually(t, func() bool {
		return len(f.pub.onTopic(topics.FieldValidated.Name())) == 2
	}, "second validation should run")

	assert.Equal(t, classes, f.mem.Classes("login-email"))
	assert.Empty(t, f.mem.Text("login-email-feedback"))
}
