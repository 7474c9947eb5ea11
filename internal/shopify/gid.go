package shopify

import "strings"

// GID builds a platform global id for the given resource name, passing
// through values that already carry the gid prefix.
func GID(resource, id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/" + resource + "/" + id
}

// ProductGIDs converts a list of product ids to global ids.
func ProductGIDs(ids []string) []string {
	return gids("Product", ids)
}

// CollectionGIDs converts a list of collection ids to global ids.
func CollectionGIDs(ids []string) []string {
	return gids("Collection", ids)
}

// CustomerGIDs converts a list of customer ids to global ids.
func CustomerGIDs(ids []string) []string {
	return gids("Customer", ids)
}

func gids(resource string, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, GID(resource, id))
	}
	return out
}
