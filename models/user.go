package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, credential data, and optional profile fields.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login identifier used during authentication.
	Username string `json:"username"`

	// Email is the unique contact address of the user.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"full_name,omitempty"`

	// JobTitle is an optional free-form occupation label.
	JobTitle string `json:"job_title,omitempty"`

	// Bio is an optional free-form description of the user.
	Bio string `json:"bio,omitempty"`

	// Website is an optional URL shown on the user's profile.
	Website string `json:"website,omitempty"`

	// AvatarPath is the server-side reference to the user's uploaded
	// avatar file. The file contents live outside the database.
	AvatarPath string `json:"avatar_path,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ProfileUpdate describes a partial update of profile-only fields.
// Only non-nil fields are applied. Identity fields (username, email)
// and the password hash are never reachable through this type.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	JobTitle *string `json:"job_title,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (p ProfileUpdate) Empty() bool {
	return p.FullName == nil && p.JobTitle == nil && p.Bio == nil && p.Website == nil
}
