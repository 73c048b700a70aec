package models

// Relationship labels offered by the member form.
// RelationshipRoot is reserved for the single parentless member.
const (
	RelationshipRoot    = "Root"
	RelationshipSpouse  = "Spouse"
	RelationshipChild   = "Child"
	RelationshipSibling = "Sibling"
	RelationshipParent  = "Parent"
	RelationshipOther   = "Other"
)

// Storage key prefixes, suffixed with the owner's user ID
const (
	FamilyTreeKeyPrefix = "familyTree_"
	SettingsKeyPrefix   = "settings_"
	ProfileKeyPrefix    = "profile_"
)

// FamilyTreeKey returns the key a user's tree snapshot is stored under
func FamilyTreeKey(uid string) string {
	return FamilyTreeKeyPrefix + uid
}

// SettingsKey returns the key a user's settings are stored under
func SettingsKey(uid string) string {
	return SettingsKeyPrefix + uid
}

// ProfileKey returns the key a user's profile is stored under
func ProfileKey(uid string) string {
	return ProfileKeyPrefix + uid
}
