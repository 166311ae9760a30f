package models

// User mirrors the identity provider's public profile record.
type User struct {
	UID         string `bson:"_id" json:"uid"`
	DisplayName string `bson:"displayName" json:"display_name"`
	PhotoURL    string `bson:"photoURL,omitempty" json:"photo_url,omitempty"`
}
