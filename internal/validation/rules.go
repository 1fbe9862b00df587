package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// DefaultRuleTimeout bounds a single rule evaluation. Rules run on the
// interaction path, so a misbehaving script must give up quickly.
const DefaultRuleTimeout = 50 * time.Millisecond

// rulePackages are the Tengo stdlib modules a rule may import.
var rulePackages = []string{"fmt", "text"}

// RuleInput is the data a rule script sees. Each entry is exposed as a
// plain variable: `value`, `form`, `field`.
type RuleInput struct {
	Form  string
	Field string
	Value string
}

// RuleSet holds named Tengo validation rules. A rule inspects `value`
// and must assign `ok` (truthy when the value passes); a failing rule
// may also assign `message` to explain itself.
type RuleSet struct {
	mu      sync.RWMutex
	sources map[string]string
	timeout time.Duration
}

// NewRuleSet creates an empty rule set with the default timeout.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		sources: make(map[string]string),
		timeout: DefaultRuleTimeout,
	}
}

// Register adds or replaces a named rule.
func (r *RuleSet) Register(name, source string) error {
	if name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if source == "" {
		return fmt.Errorf("rule %q has no source", name)
	}

	r.mu.Lock()
	r.sources[name] = source
	r.mu.Unlock()
	return nil
}

// Names returns the registered rule names.
func (r *RuleSet) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.sources))
	for name := range r.sources {
		out = append(out, name)
	}
	return out
}

// Eval runs a named rule against a field value. Scripts are compiled per
// evaluation because Tengo binds input variables before compilation.
func (r *RuleSet) Eval(ctx context.Context, name string, input RuleInput) (Result, error) {
	r.mu.RLock()
	source, found := r.sources[name]
	r.mu.RUnlock()
	if !found {
		return Result{}, fmt.Errorf("rule %q is not registered", name)
	}

	script := tengo.NewScript([]byte(source))
	script.SetImports(ruleModules())

	if err := script.Add("value", input.Value); err != nil {
		return Result{}, fmt.Errorf("rule %q: binding value: %w", name, err)
	}
	if err := script.Add("form", input.Form); err != nil {
		return Result{}, fmt.Errorf("rule %q: binding form: %w", name, err)
	}
	if err := script.Add("field", input.Field); err != nil {
		return Result{}, fmt.Errorf("rule %q: binding field: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return Result{}, fmt.Errorf("rule %q: compile: %w", name, err)
	}

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Run in a goroutine so a runaway or panicking script cannot take
	// the interaction loop down with it.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("rule panic: %v", rec)
			}
		}()
		done <- compiled.Run()
	}()

	select {
	case err := <-done:
		if err != nil {
			return Result{}, fmt.Errorf("rule %q: %w", name, err)
		}
	case <-execCtx.Done():
		return Result{}, fmt.Errorf("rule %q: %w", name, execCtx.Err())
	}

	okVar := compiled.Get("ok")
	if okVar.IsUndefined() {
		return Result{}, fmt.Errorf("rule %q did not assign ok", name)
	}
	if okVar.Bool() {
		return pass, nil
	}

	message := compiled.Get("message").String()
	if message == "" {
		message = "This value is not allowed."
	}
	return fail(message), nil
}

func ruleModules() *tengo.ModuleMap {
	modules := tengo.NewModuleMap()
	for _, pkg := range rulePackages {
		if module, exists := stdlib.BuiltinModules[pkg]; exists {
			modules.AddBuiltinModule(pkg, module)
		}
	}
	return modules
}
