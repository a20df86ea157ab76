package request

type RestaurantRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=100"`
	Slug           string  `json:"slug" validate:"omitempty,max=120,slug"`
	Address        string  `json:"address" validate:"required,max=255"`
	City           string  `json:"city" validate:"required,max=50"`
	PhoneNumber    string  `json:"phone_number" validate:"required,max=20"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Description    string  `json:"description"`
	IsActive       *bool   `json:"is_active,omitempty"`
	TableCapacity  *int    `json:"table_capacity,omitempty" validate:"omitempty,min=0"`
	OnlineCapacity *int    `json:"online_capacity,omitempty" validate:"omitempty,min=0"`
}

type RestaurantUpdateRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=255"`
	City           *string `json:"city,omitempty" validate:"omitempty,max=50"`
	PhoneNumber    *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Description    *string `json:"description,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	TableCapacity  *int    `json:"table_capacity,omitempty" validate:"omitempty,min=0"`
	OnlineCapacity *int    `json:"online_capacity,omitempty" validate:"omitempty,min=0"`
}

type RestaurantFilterRequest struct {
	PaginatedRequest
	City            string `json:"city" validate:"omitempty,max=50"`
	IncludeInactive bool   `json:"-"`
}
