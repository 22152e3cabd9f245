package models

// User mirrors one user record from the remote source. IDs are assigned by
// the source, never locally.
type User struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:150" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Age       int    `json:"age"`
}
