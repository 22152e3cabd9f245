package models

// Cart is one remote cart snapshot. A cart always belongs to an existing
// user; carts referencing unknown users are filtered out before insert.
type Cart struct {
	ID              int           `gorm:"primaryKey" json:"id"`
	UserID          int           `gorm:"index" json:"userId"`
	User            User          `gorm:"foreignKey:UserID" json:"-"`
	Total           float64       `json:"total"`
	DiscountedTotal float64       `json:"discountedTotal"`
	TotalProducts   int           `json:"totalProducts"`
	TotalQuantity   int           `json:"totalQuantity"`
	Products        []CartProduct `gorm:"foreignKey:CartID" json:"products"`
}

// CartProduct is a denormalized line item captured at time of sale. It keeps
// the product attributes as they were, not a reference into a live catalog.
type CartProduct struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	CartID             int     `gorm:"index" json:"-"`
	ProductID          int     `json:"id"`
	Title              string  `gorm:"size:255" json:"title"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Total              float64 `json:"total"`
	DiscountPercentage float64 `json:"discountPercentage"`
}
