package slides

import (
	"errors"
	"strconv"

	"github.com/aretw0/showcase/pkg/domain"
)

var keyActions = map[string]Action{
	"enter": ActionAdvance,
	"a":     ActionAutoPlay,
	"r":     ActionReset,
	"m":     ActionMode,
	"s":     ActionScenario,
	"x":     ActionExecute,
	"p":     ActionApprove,
}

// handleKey maps presenter keys onto actions. Digits select the n-th node of ids.
func handleKey(s Interactive, ids []string, key string) bool {
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > len(ids) {
			return false
		}
		return s.Do(ActionSelect, ids[n-1]) == nil
	}
	action, ok := keyActions[key]
	if !ok {
		return false
	}
	err := s.Do(action, "")
	return !errors.Is(err, domain.ErrUnknownCommand)
}
