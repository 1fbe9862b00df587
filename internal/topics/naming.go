package topics

import (
	"fmt"
	"regexp"
	"strings"
)

// Topic names follow "layer.entity.action": exactly three lowercase
// segments of letters, digits and underscores, separated by dots.
var segmentPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateName checks a topic name against the naming convention. It
// returns a TopicError describing the first violation, or nil.
func ValidateName(name string) error {
	if name == "" {
		return &TopicError{
			Type:    ErrorValidationFailed,
			Message: "topic name cannot be empty",
		}
	}

	segments := strings.Split(name, ".")
	if len(segments) != 3 {
		return &TopicError{
			Type:    ErrorValidationFailed,
			Topic:   name,
			Message: fmt.Sprintf("topic name must have exactly 3 segments (layer.entity.action), got %d", len(segments)),
		}
	}

	for _, segment := range segments {
		if !segmentPattern.MatchString(segment) {
			return &TopicError{
				Type:    ErrorValidationFailed,
				Topic:   name,
				Message: fmt.Sprintf("invalid segment %q: segments are lowercase letters, digits and underscores, starting with a letter", segment),
			}
		}
	}

	return nil
}
