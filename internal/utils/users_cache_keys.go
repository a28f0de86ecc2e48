package utils

const usersCachePrefix = "users:v1:"

func UsersListCacheKey() string {
	return usersCachePrefix + "all"
}

// UserByIDCacheKey keeps the id verbatim; lookups are exact-match.
func UserByIDCacheKey(id string) string {
	return usersCachePrefix + "id=" + id
}
