package pipeline

import "fmt"

// Stats counts what one extraction run did.
type Stats struct {
	UsersExtracted int `json:"users_extracted"`
	UsersSaved     int `json:"users_saved"`
	CartsExtracted int `json:"carts_extracted"`
	CartsSaved     int `json:"carts_saved"`
	CartsRejected  int `json:"carts_rejected"`
	ProductsSaved  int `json:"products_saved"`
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"users %d/%d saved, carts %d/%d saved (%d rejected), %d line items",
		s.UsersSaved, s.UsersExtracted,
		s.CartsSaved, s.CartsExtracted, s.CartsRejected,
		s.ProductsSaved,
	)
}
