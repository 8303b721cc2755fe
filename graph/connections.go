package graph

import (
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
)

// connectedUsers returns, for each edge, the endpoint that is not userID.
// Edges keep the order they were fetched in.
func connectedUsers(userID int, edges []*database.ConnectionEdge) []*database.User {
	users := make([]*database.User, 0, len(edges))
	for _, e := range edges {
		if e.User1ID == userID {
			users = append(users, e.User2)
		} else {
			users = append(users, e.User1)
		}
	}
	return users
}
