package entity

const (
	DefaultTableCapacity  = 80
	DefaultOnlineCapacity = 50
)

type Restaurant struct {
	Base
	Name           string  `db:"name"`
	Slug           string  `db:"slug"`
	Address        string  `db:"address"`
	City           string  `db:"city"`
	PhoneNumber    string  `db:"phone_number"`
	Email          *string `db:"email"`
	Description    string  `db:"description"`
	IsActive       bool    `db:"is_active"`
	TableCapacity  int     `db:"table_capacity"`
	OnlineCapacity int     `db:"online_capacity"`
}
