package models

import "time"

// Role labels for User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account within the catalog platform.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"fullName"`
	Password         string    `json:"-"`
	Role             string    `json:"role"`
	CanAccessPrivate bool      `json:"canAccessPrivate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile is a public catalog entry with media, descriptive attributes, and
// like engagement.
type Profile struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Age         int      `json:"age"`
	NetSalary   string   `json:"netSalary"`
	FatherJob   string   `json:"fatherJob"`
	MotherJob   string   `json:"motherJob"`
	Height      string   `json:"height"`
	BodySize    string   `json:"bodySize"`
	BustSize    string   `json:"bustSize"`
	SkinColor   string   `json:"skinColor"`
	Nationality string   `json:"nationality"`
	Residence   string   `json:"residence"`
	LivingWith  string   `json:"livingWith"`
	Instagram   string   `json:"instagram"`
	MusicTags   []string `json:"musicTags"`
	PlaceTags   []string `json:"placeTags"`
	Photos      []string `json:"photos"`
	Videos      []string `json:"videos"`
	IsAvailable bool     `json:"isAvailable"`

	LikesCount           int    `json:"likesCount"`
	IsLikedByCurrentUser bool   `json:"isLikedByCurrentUser"`
	LikedByUsers         []User `json:"likedByUsers"`

	// CreatedBy is nil for legacy profiles imported before ownership existed.
	CreatedBy *User     `json:"createdByUser,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrivateProfile is a catalog entry scoped to a privileged audience.
type PrivateProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	Videos      []string  `json:"videos"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Comment is a visitor comment on a profile. Comments start unapproved and
// surface publicly only after moderation.
type Comment struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
