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

const corporateEmailRule = `
text := import("text")
ok := text.has_suffix(value, "@corp.example")
message := "Please use your corporate email address."
`

func TestRuleSetEval(t *testing.T) {
	ctx := context.Background()

	t.Run("passing rule", func(t *testing.T) {
		rules := validation.NewRuleSet()
		require.NoError(t, rules.Register("corporate-email", corporateEmailRule))

		res, err := rules.Eval(ctx, "corporate-email", validation.RuleInput{
			Form:  "login",
			Field: "email",
			Value: "jane@corp.example",
		})
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("failing rule carries its message", func(t *testing.T) {
		rules := validation.NewRuleSet()
		require.NoError(t, rules.Register("corporate-email", corporateEmailRule))

		res, err := rules.Eval(ctx, "corporate-email", validation.RuleInput{Value: "jane@gmail.com"})
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, "Please use your corporate email address.", res.Message)
	})

	t.Run("failing rule without message gets a default", func(t *testing.T) {
		rules := validation.NewRuleSet()
		require.NoError(t, rules.Register("never", `ok := false`))

		res, err := rules.Eval(ctx, "never", validation.RuleInput{Value: "anything"})
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("rule that never assigns ok is an error", func(t *testing.T) {
		rules := validation.NewRuleSet()
		require.NoError(t, rules.Register("silent", `x := 1`))

		_, err := rules.Eval(ctx, "silent", validation.RuleInput{Value: "anything"})
		assert.Error(t, err)
	})

	t.Run("unknown rule is an error", func(t *testing.T) {
		rules := validation.NewRuleSet()
		_, err := rules.Eval(ctx, "ghost", validation.RuleInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")
	})

	t.Run("syntax error surfaces at eval", func(t *testing.T) {
		rules := validation.NewRuleSet()
		require.NoError(t, rules.Register("broken", `ok := ((`))

		_, err := rules.Eval(ctx, "broken", validation.RuleInput{})
		assert.Error(t, err)
	})

	t.Run("runaway rule times out", func(t *testing.T) {
		rules := validation.NewRuleSet()
		require.NoError(t, rules.Register("spin", `ok := true; for true {}`))

		_, err := rules.Eval(ctx, "spin", validation.RuleInput{})
		assert.Error(t, err)
	})
}

func TestRuleSetRegister(t *testing.T) {
	rules := validation.NewRuleSet()

	assert.Error(t, rules.Register("", "ok := true"))
	assert.Error(t, rules.Register("empty", ""))

	require.NoError(t, rules.Register("a", "ok := true"))
	require.NoError(t, rules.Register("b", "ok := true"))
	assert.ElementsMatch(t, []string{"a", "b"}, rules.Names())
}

func TestEngineWithScriptedRule(t *testing.T) {
	rules := validation.NewRuleSet()
	require.NoError(t, rules.Register("corporate-email", corporateEmailRule))
	engine := validation.New(validation.WithRules(rules))
	ctx := context.Background()

	spec := forms.FormSpec{
		ID: "login",
		Fields: []forms.FieldSpec{
			{Name: "email", Kind: forms.KindEmail, Required: true, Rule: "corporate-email"},
			{Name: "password", Kind: forms.KindPassword, Required: true, PasswordRole: forms.RolePrimary},
		},
	}.Normalize()

	t.Run("rule runs after the built-in checks pass", func(t *testing.T) {
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue("login-email", "jane@gmail.com")

		res := engine.Field(ctx, mem, spec, "email")
		require.False(t, res.Valid)
		assert.Equal(t, "Please use your corporate email address.", res.Message)
	})

	t.Run("built-in failure short-circuits the rule", func(t *testing.T) {
		mem := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
		mem.SetValue("login-email", "not-an-email")

		res := engine.Field(ctx, mem, spec, "email")
		require.False(t, res.Valid)
		assert.Equal(t, validation.MsgEmail, res.Message)
	})

	t.Run("missing rule fails open", func(t *testing.T) {
		ghost := spec
		ghost.Fields = append([]forms.FieldSpec(nil), spec.Fields...)
		ghost.Fields[0].Rule = "ghost"

		mem := surface.NewMemory(surface.WithNodes(ghost.Nodes()...))
		mem.SetValue("login-email", "jane@gmail.com")

		res := engine.Field(ctx, mem, ghost, "email")
		assert.True(t, res.Valid)
	})
}
