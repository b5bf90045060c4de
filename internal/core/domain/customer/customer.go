package customer

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

type Address struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Company    string `json:"company,omitempty" form:"company"`
	Line1      string `json:"line1" form:"line1" validate:"required,max=200"`
	Line2      string `json:"line2,omitempty" form:"line2"`
	City       string `json:"city" form:"city" validate:"required,max=100"`
	Region     string `json:"region,omitempty" form:"region"`
	PostalCode string `json:"postal_code" form:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" form:"country" validate:"required,len=2"`
	Phone      string `json:"phone,omitempty" form:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Marketing bool   `json:"accepts_marketing" form:"accepts_marketing"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" form:"phone" validate:"max=32"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token    string    `json:"token"`
	Customer *Customer `json:"customer"`
}
