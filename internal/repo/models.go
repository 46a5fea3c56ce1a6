package repo

import "time"

// User is a registered account. Password holds the argon2id hash.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	Name      string
	Mobile    string
	Residence string
	CreatedAt time.Time
}

// ChatMessage is one row of a chat room table. The persisted schema has no
// username column; Message carries "<username>: <text>" instead.
type ChatMessage struct {
	ID        int64     `json:"id"`
	SchoolID  int64     `json:"school_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteSchool links a user to a school by name.
type FavoriteSchool struct {
	SchoolName string `json:"school_name"`
}

// Review is a user-submitted school review.
type Review struct {
	ID         int64     `json:"id"`
	SchoolName string    `json:"school_name"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
