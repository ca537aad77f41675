package services

// CanMutatePost reports whether actingUserID may update or delete a post
// owned by ownerID. Ownership is the only criterion; admins get no override.
// The post must already have been loaded, so a missing post surfaces as
// NOT_FOUND before this is consulted.
func CanMutatePost(actingUserID, ownerID string) bool {
	return actingUserID != "" && actingUserID == ownerID
}
