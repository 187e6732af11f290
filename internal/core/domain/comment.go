package domain

// Comment is a note authored by a user. UserID is a back-reference to the owner.
type Comment struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
	Audit
}
