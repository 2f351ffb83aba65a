package components

import (
	"context"
	"log/slog"
	"os"

	"roomreserve/internal/domain/room"
	"roomreserve/internal/domain/user"
	"roomreserve/internal/pkg/password"

	"github.com/google/uuid"
)

type seedRoom struct {
	name      string
	capacity  int
	amenities []string
}

var defaultRooms = []seedRoom{
	{name: "Aurora", capacity: 4, amenities: []string{"whiteboard", "display"}},
	{name: "Borealis", capacity: 8, amenities: []string{"whiteboard", "display", "conference phone"}},
	{name: "Cascade", capacity: 12, amenities: []string{"projector", "video conferencing"}},
	{name: "Dune", capacity: 2, amenities: []string{"standing desk"}},
}

type seedUser struct {
	email       string
	displayName string
	role        user.Role
	passwordEnv string
	fallback    string
}

var defaultUsers = []seedUser{
	{email: "admin@roomreserve.local", displayName: "Admin", role: user.RoleAdmin, passwordEnv: "SEED_ADMIN_PASSWORD", fallback: "admin-password"},
	{email: "member@roomreserve.local", displayName: "Member", role: user.RoleMember, passwordEnv: "SEED_MEMBER_PASSWORD", fallback: "member-password"},
}

// seed fills the in-memory backend with a room catalog and two accounts
// so a fresh process is immediately usable.
func seed(ctx context.Context, stores *Stores) error {
	for _, sr := range defaultRooms {
		roomEntity, err := room.NewRoom(uuid.New(), sr.name, sr.capacity, sr.amenities)
		if err != nil {
			return err
		}
		if err := stores.Rooms.Create(ctx, roomEntity); err != nil {
			return err
		}
	}

	for _, su := range defaultUsers {
		raw := os.Getenv(su.passwordEnv)
		if raw == "" {
			raw = su.fallback
		}
		hash, err := password.HashPassword(raw)
		if err != nil {
			return err
		}
		email, err := user.NewEmail(su.email)
		if err != nil {
			return err
		}
		userEntity, err := user.NewUser(email, su.displayName, hash, su.role)
		if err != nil {
			return err
		}
		if err := stores.Users.Create(ctx, userEntity); err != nil {
			return err
		}
	}

	slog.Info("seeded memory store", "rooms", len(defaultRooms), "users", len(defaultUsers))
	return nil
}
