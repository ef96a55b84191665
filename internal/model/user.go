package model

import "time"

// User is the persisted user record.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Age       int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// UserRequest is the payload accepted when creating or updating a user.
type UserRequest struct {
	Name  string `json:"name" validate:"required,max=255" example:"Sarah Jenkins"`
	Email string `json:"email" validate:"required,email,max=255" example:"sarahjenkins@gmail.com"`
	Age   *int   `json:"age" validate:"required,gte=0,lte=150" example:"25"`
}

// UserResponse is the representation of a user returned to clients.
type UserResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Sarah Jenkins"`
	Email     string    `json:"email" example:"sarahjenkins@gmail.com"`
	Age       int       `json:"age" example:"25"`
	CreatedAt time.Time `json:"createdAt" example:"2024-07-27T10:00:00Z"`
}

// ToUserResponse maps an entity to its response shape.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}
