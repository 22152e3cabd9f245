package pipeline

import (
	"github.com/samber/lo"

	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/models"
)

// UserIDSet collects the ids of a freshly extracted user batch. Membership is
// checked against this set, not against the users table: a user the remote
// has dropped no longer anchors carts, even if an old row still exists.
func UserIDSet(users []models.User) map[int]struct{} {
	return lo.SliceToMap(users, func(u models.User) (int, struct{}) {
		return u.ID, struct{}{}
	})
}

// PartitionCarts splits carts into those whose user id is in validUserIDs and
// those referencing an unknown user. Rejection is expected and non-fatal; the
// caller counts and logs the rejected carts.
func PartitionCarts(carts []models.Cart, validUserIDs map[int]struct{}) (accepted, rejected []models.Cart) {
	return lo.FilterReject(carts, func(c models.Cart, _ int) bool {
		_, ok := validUserIDs[c.UserID]
		return ok
	})
}
