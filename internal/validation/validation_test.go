package validation_test

import (
	"context"
	"testing"

	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/surface"
	"github.com/nfrund/formwire/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPriorityOrder(t *testing.T) {
	engine := validation.New()

	requiredEmail := forms.FieldSpec{Name: "email", Kind: forms.KindEmail, Required: true}
	optionalEmail := forms.FieldSpec{Name: "email", Kind: forms.KindEmail}
	primary := forms.FieldSpec{Name: "password", Kind: forms.KindPassword, Required: true, PasswordRole: forms.RolePrimary}
	confirm := forms.FieldSpec{Name: "confirm", Kind: forms.KindPassword, Required: true, PasswordRole: forms.RoleConfirm}

	tests := []struct {
		name    string
		field   forms.FieldSpec
		value   string
		primary string
		want    validation.Result
	}{
		{
			name:  "required beats shape for whitespace-only email",
			field: requiredEmail,
			value: "   ",
			want:  validation.Result{Valid: false, Message: validation.MsgRequired},
		},
		{
			name:  "optional email left empty is fine",
			field: optionalEmail,
			value: "",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "optional email of only spaces fails shape",
			field: optionalEmail,
			value: " ",
			want:  validation.Result{Valid: false, Message: validation.MsgEmail},
		},
		{
			name:  "email without dot after the at sign",
			field: requiredEmail,
			value: "user@domain",
			want:  validation.Result{Valid: false, Message: validation.MsgEmail},
		},
		{
			name:  "email with two at signs",
			field: requiredEmail,
			value: "a@b@c.d",
			want:  validation.Result{Valid: false, Message: validation.MsgEmail},
		},
		{
			name:  "email with embedded whitespace",
			field: requiredEmail,
			value: "user name@domain.tld",
			want:  validation.Result{Valid: false, Message: validation.MsgEmail},
		},
		{
			name:  "well-shaped email",
			field: requiredEmail,
			value: "user@domain.tld",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "required beats length for empty password",
			field: primary,
			value: "",
			want:  validation.Result{Valid: false, Message: validation.MsgRequired},
		},
		{
			name:  "short password",
			field: primary,
			value: "Abc1",
			want:  validation.Result{Valid: false, Message: validation.MsgPasswordLength},
		},
		{
			name:  "password length counts runes",
			field: primary,
			value: "Pässwört",
			want:  validation.Result{Valid: true},
		},
		{
			name:    "confirmation mismatch",
			field:   confirm,
			value:   "Abcdefg2",
			primary: "Abcdefg1",
			want:    validation.Result{Valid: false, Message: validation.MsgPasswordMismatch},
		},
		{
			name:    "confirmation match",
			field:   confirm,
			value:   "Abcdefg1",
			primary: "Abcdefg1",
			want:    validation.Result{Valid: true},
		},
		{
			name:    "required beats mismatch for empty confirmation",
			field:   confirm,
			value:   "",
			primary: "Abcdefg1",
			want:    validation.Result{Valid: false, Message: validation.MsgRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Check(tt.field, tt.value, tt.primary)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckbox(t *testing.T) {
	engine := validation.New()
	terms := forms.FieldSpec{Name: "terms", Kind: forms.KindCheckbox, Terms: true}
	remember := forms.FieldSpec{Name: "remember", Kind: forms.KindCheckbox}

	assert.False(t, engine.Checkbox(terms, false).Valid)
	assert.Equal(t, validation.MsgTerms, engine.Checkbox(terms, false).Message)
	assert.True(t, engine.Checkbox(terms, true).Valid)
	assert.True(t, engine.Checkbox(remember, false).Valid, "plain checkboxes never fail")
}

func TestFieldPresentsMarkers(t *testing.T) {
	engine := validation.New()
	spec := forms.LoginSpec()
	ctx := context.Background()

	t.Run("invalid field gets invalid markers and feedback", func(t *testing.T) {
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue(forms.NodeLoginEmail, "not-an-email")

		res := engine.Field(ctx, mem, spec, "email")

		require.False(t, res.Valid)
		assert.True(t, mem.HasClass(forms.NodeLoginEmail, validation.ClassInvalid))
		assert.False(t, mem.HasClass(forms.NodeLoginEmail, validation.ClassValid))
		attr, found := mem.Attr(forms.NodeLoginEmail, validation.AttrInvalid)
		assert.True(t, found)
		assert.Equal(t, "true", attr)
		assert.Equal(t, validation.MsgEmail, mem.Text("login-email-feedback"))
	})

	t.Run("correcting the value swaps the markers", func(t *testing.T) {
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue(forms.NodeLoginEmail, "not-an-email")
		engine.Field(ctx, mem, spec, "email")

		mem.SetValue(forms.NodeLoginEmail, "user@example.com")
		res := engine.Field(ctx, mem, spec, "email")

		require.True(t, res.Valid)
		assert.True(t, mem.HasClass(forms.NodeLoginEmail, validation.ClassValid))
		assert.False(t, mem.HasClass(forms.NodeLoginEmail, validation.ClassInvalid))
		_, found := mem.Attr(forms.NodeLoginEmail, validation.AttrInvalid)
		assert.False(t, found)
		assert.Empty(t, mem.Text("login-email-feedback"))
	})

	t.Run("unknown field is a no-op", func(t *testing.T) {
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		res := engine.Field(ctx, mem, spec, "nonexistent")
		assert.True(t, res.Valid)
		assert.Empty(t, mem.Classes(forms.NodeLoginEmail))
	})
}

func TestForm(t *testing.T) {
	engine := validation.New()
	ctx := context.Background()

	t.Run("empty registration fails and marks every participating field", func(t *testing.T) {
		spec := forms.RegistrationSpec()
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))

		assert.False(t, engine.Form(ctx, mem, spec))

		for _, node := range []string{
			forms.NodeRegisterFullName,
			forms.NodeRegisterEmail,
			forms.NodeRegisterPassword,
			forms.NodeRegisterConfirmPassword,
			forms.NodeRegisterTerms,
		} {
			assert.True(t, mem.HasClass(node, validation.ClassInvalid), node)
		}
	})

	t.Run("complete registration passes", func(t *testing.T) {
		spec := forms.RegistrationSpec()
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue(forms.NodeRegisterFullName, "Jane Doe")
		mem.SetValue(forms.NodeRegisterEmail, "jane@example.com")
		mem.SetValue(forms.NodeRegisterPassword, "Abcdefg1")
		mem.SetValue(forms.NodeRegisterConfirmPassword, "Abcdefg1")
		mem.SetChecked(forms.NodeRegisterTerms, true)

		assert.True(t, engine.Form(ctx, mem, spec))
		assert.True(t, mem.HasClass(forms.NodeRegisterEmail, validation.ClassValid))
	})

	t.Run("unchecked terms fails an otherwise perfect form", func(t *testing.T) {
		spec := forms.RegistrationSpec()
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue(forms.NodeRegisterFullName, "Jane Doe")
		mem.SetValue(forms.NodeRegisterEmail, "jane@example.com")
		mem.SetValue(forms.NodeRegisterPassword, "Abcdefg1")
		mem.SetValue(forms.NodeRegisterConfirmPassword, "Abcdefg1")

		assert.False(t, engine.Form(ctx, mem, spec))
		assert.True(t, mem.HasClass(forms.NodeRegisterTerms, validation.ClassInvalid))
		assert.Equal(t, validation.MsgTerms, mem.Text("register-terms-feedback"))
	})

	t.Run("remember-me checkbox is not visited", func(t *testing.T) {
		spec := forms.LoginSpec()
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue(forms.NodeLoginEmail, "user@example.com")
		mem.SetValue(forms.NodeLoginPassword, "Abcdefg1")

		assert.True(t, engine.Form(ctx, mem, spec))
		assert.Empty(t, mem.Classes(forms.NodeLoginRemember))
	})
}

func TestStruct(t *testing.T) {
	engine := validation.New()

	t.Run("valid view-model", func(t *testing.T) {
		err := engine.Struct(forms.LoginForm{
			Email:    "user@example.com",
			Password: "Abcdefg1",
		})
		assert.NoError(t, err)
	})

	t.Run("view-model tags use the same email shape", func(t *testing.T) {
		err := engine.Struct(forms.LoginForm{
			Email:    "user@domain",
			Password: "Abcdefg1",
		})
		assert.Error(t, err)
	})

	t.Run("registration enforces matching passwords and terms", func(t *testing.T) {
		err := engine.Struct(forms.RegistrationForm{
			FullName:        "Jane Doe",
			Email:           "jane@example.com",
			Password:        "Abcdefg1",
			ConfirmPassword: "Abcdefg2",
			AcceptTerms:     true,
		})
		assert.Error(t, err)
	})
}

func TestClear(t *testing.T) {
	engine := validation.New()
	spec := forms.LoginSpec()
	mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
	mem.SetValue(forms.NodeLoginEmail, "nope")
	engine.Field(context.Background(), mem, spec, "email")

	fld, _ := spec.Field("email")
	validation.Clear(mem, fld)

	assert.Empty(t, mem.Classes(forms.NodeLoginEmail))
	_, found := mem.Attr(forms.NodeLoginEmail, validation.AttrInvalid)
	assert.False(t, found)
	assert.Empty(t, mem.Text("login-email-feedback"))
}
