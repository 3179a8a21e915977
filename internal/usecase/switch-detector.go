package usecase

import (
	"strings"

	"github.com/thefortaiagency/bendavis/internal/model"
)

var (
	brentTriggers = []string{"brent"}
	benTriggers   = []string{"ben", "father", "dad"}
)

// DetectSwitch reports which persona should speak on the next turn given the
// persona active now and the user's message. Matching is a case-insensitive
// substring search; only the persona that is not active can be requested.
func DetectSwitch(active model.PersonaID, message string) (model.PersonaID, bool) {
	lowerMessage := strings.ToLower(message)
	switch active {
	case model.PersonaBen:
		if containsAny(lowerMessage, brentTriggers) {
			return model.PersonaBrent, true
		}
	case model.PersonaBrent:
		if containsAny(lowerMessage, benTriggers) {
			return model.PersonaBen, true
		}
	}
	return active, false
}

func containsAny(s string, substrs []string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
