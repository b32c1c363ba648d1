package cache

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Cache key layout, shared with any process using the same Redis
// instance (the namespace prefix is applied by the Store):
//
//	<entity>:id:<uuid>                          entity by id
//	<entity>:list:<variant>                     list/search results
//	<entity>:list:keys                          index of issued list keys
//	invoice:overdue:<client_id|all>             overdue invoice lists
//	permission:perm:<role_id>:<resource>:<action>

func IDKey(entity string, id uuid.UUID) string {
	return entity + ":id:" + id.String()
}

// ListKey builds a deterministic list-cache key from the query parts.
func ListKey(entity string, parts ...string) string {
	return entity + ":list:" + strings.Join(parts, ":")
}

func ListIndexKey(entity string) string {
	return entity + ":list:keys"
}

func OverdueKey(clientID *uuid.UUID) string {
	scope := "all"
	if clientID != nil {
		scope = clientID.String()
	}
	return "invoice:overdue:" + scope
}

func PermissionKey(roleID uuid.UUID, resource, action string) string {
	return fmt.Sprintf("permission:perm:%s:%s:%s", roleID, resource, action)
}
