// Package identity resolves the current actor. The values are consumed as
// given: tride is not an identity provider, it just needs to know who is
// checking in.
package identity

import (
	"fmt"
	"os/user"

	"github.com/tride/tride/internal/config"
)

// Actor is the person performing check-ins and check-outs
type Actor struct {
	ID    string
	Name  string
	Email string
}

// Resolve builds the current actor from config, falling back to the OS user
// for id and display name. Fails when no user id can be determined at all.
func Resolve(cfg *config.Config) (Actor, error) {
	actor := Actor{
		ID:    cfg.UserID,
		Name:  cfg.UserName,
		Email: cfg.UserEmail,
	}

	if actor.ID == "" || actor.Name == "" {
		current, err := user.Current()
		if err == nil {
			if actor.ID == "" {
				actor.ID = current.Username
			}
			if actor.Name == "" {
				actor.Name = current.Name
			}
		}
	}

	if actor.ID == "" {
		return Actor{}, fmt.Errorf("cannot determine user: set TRIDE_USER_ID")
	}
	if actor.Name == "" {
		actor.Name = actor.ID
	}

	return actor, nil
}
