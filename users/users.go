package users

import "time"

// CodeFile is a single named file inside a published snippet.
type CodeFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Code is a published snippet. Codes are embedded in their owner's user
// record rather than stored in their own collection.
type Code struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userid"`
	Title       string     `json:"title"`
	Language    string     `json:"language"`
	Description string     `json:"description"`
	Files       []CodeFile `json:"files"`
	Views       int        `json:"views"`
	LikedBy     []string   `json:"likedBy"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// User is the public, gamified profile. Credentials live on the accounts
// record under the same id.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Level        int      `json:"level"`
	XP           int      `json:"xp"`
	Streak       int      `json:"streak"`
	Achievements []string `json:"achievements"`
	Photo        string   `json:"photo"`
	Codes        []Code   `json:"codes"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Update is a partial profile update; nil fields are left untouched.
type Update struct {
	Name         *string   `json:"name"`
	Photo        *string   `json:"photo"`
	Level        *int      `json:"level"`
	XP           *int      `json:"xp"`
	Streak       *int      `json:"streak"`
	Achievements *[]string `json:"achievements"`
	Codes        *[]Code   `json:"codes"`
}

// NewUser builds a fresh level-one profile for a newly registered account.
func NewUser(id, name string) *User {
	now := Timestamp()
	return &User{
		ID:           id,
		Name:         name,
		Level:        1,
		XP:           0,
		Streak:       0,
		Achievements: []string{},
		Photo:        "",
		Codes:        []Code{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Timestamp returns the wire format used for createdAt/updatedAt fields.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Apply merges the non-nil fields of the update into the user and refreshes
// the updatedAt stamp.
func (u *User) Apply(update Update) {
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Photo != nil {
		u.Photo = *update.Photo
	}
	if update.Level != nil {
		u.Level = *update.Level
	}
	if update.XP != nil {
		u.XP = *update.XP
	}
	if update.Streak != nil {
		u.Streak = *update.Streak
	}
	if update.Achievements != nil {
		u.Achievements = *update.Achievements
	}
	if update.Codes != nil {
		u.Codes = *update.Codes
	}
	u.UpdatedAt = Timestamp()
}

// FindCode returns the index of the code with the given id, or -1.
func (u *User) FindCode(codeID int64) int {
	for i := range u.Codes {
		if u.Codes[i].ID == codeID {
			return i
		}
	}
	return -1
}

// Liked reports whether the given user id is in the code's likedBy list.
func (c *Code) Liked(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike adds the user id to likedBy, or removes it if already present,
// and reports whether the code ends up liked.
func (c *Code) ToggleLike(userID string) bool {
	for i, id := range c.LikedBy {
		if id == userID {
			c.LikedBy = append(c.LikedBy[:i], c.LikedBy[i+1:]...)
			return false
		}
	}
	c.LikedBy = append(c.LikedBy, userID)
	return true
}
