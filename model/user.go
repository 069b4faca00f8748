package model

import "github.com/muhammadheryan/food-delivery/constant"

// Session is what the BFF keeps per login: the marketplace token and who it belongs to.
type Session struct {
	ID     string        `json:"id"`
	UserID string        `json:"user_id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Role   constant.Role `json:"role"`
	Token  string        `json:"token"`
}

// MarketplaceUser as returned by the marketplace login endpoint.
type MarketplaceUser struct {
	ID    string        `json:"_id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  constant.Role `json:"role"`
}

type MarketplaceLogin struct {
	Token string          `json:"token"`
	User  MarketplaceUser `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  constant.Role `json:"role"`
	Token string        `json:"token"`
}
