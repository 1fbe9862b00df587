package controller

import (
	"strconv"
	"strings"

	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/strength"
)

// Strength meter presentation, written onto the field's meter nodes.
const (
	ClassStrengthWeak   = "strength-weak"
	ClassStrengthMedium = "strength-medium"
	ClassStrengthStrong = "strength-strong"
	AttrStrengthScore   = "data-score"
)

var strengthClasses = map[strength.Level]string{
	strength.LevelWeak:   ClassStrengthWeak,
	strength.LevelMedium: ClassStrengthMedium,
	strength.LevelStrong: ClassStrengthStrong,
}

var strengthLabels = map[strength.Level]string{
	strength.LevelWeak:   "Weak",
	strength.LevelMedium: "Medium",
	strength.LevelStrong: "Strong",
}

// updateStrength recomputes the meter from the field's current value and
// writes score, level class and summary text onto the surface.
func (c *Controller) updateStrength(spec forms.FormSpec, fld forms.FieldSpec) {
	result := strength.Evaluate(c.surface.Value(fld.Node))

	c.surface.SetAttr(fld.MeterNode, AttrStrengthScore, strconv.Itoa(result.Score))
	for level, class := range strengthClasses {
		if level == result.Level {
			continue
		}
		c.surface.RemoveClass(fld.MeterNode, class)
	}
	c.surface.AddClass(fld.MeterNode, strengthClasses[result.Level])

	c.surface.SetText(fld.MeterTextNode, StrengthText(result))

	c.publishStrengthChanged(StrengthEvent{
		ClientID: c.clientID,
		Form:     spec.ID,
		Field:    fld.Name,
		Score:    result.Score,
		Level:    string(result.Level),
		Feedback: result.Feedback,
	})
}

// StrengthText renders the meter's one-line summary: the level, plus the
// missing requirements when there are any.
func StrengthText(result strength.Result) string {
	label := strengthLabels[result.Level] + " password"
	if len(result.Feedback) == 0 {
		return label
	}
	return label + ": " + strings.Join(result.Feedback, ", ")
}
