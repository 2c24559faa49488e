package rbac

import (
	"sort"
	"strings"
)

// Canonical action names shared across resources.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// resourceActions is the central allow-list of action vocabularies per
// resource. Actions stay open strings, but call sites never invent names:
// a grant naming an action outside this list evaluates to false.
var resourceActions = map[string][]string{
	"produtos":   {ActionView, ActionCreate, ActionUpdate, ActionDelete},
	"clientes":   {ActionView, ActionCreate, ActionUpdate, ActionDelete},
	"permissoes": {ActionView},
}

// KnownAction reports whether action belongs to the resource's vocabulary.
func KnownAction(resource, action string) bool {
	actions, ok := resourceActions[strings.ToLower(strings.TrimSpace(resource))]
	if !ok {
		return false
	}
	action = strings.ToLower(strings.TrimSpace(action))
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// Resources lists every resource with a registered vocabulary, sorted.
func Resources() []string {
	names := make([]string, 0, len(resourceActions))
	for name := range resourceActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
