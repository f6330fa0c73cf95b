// Package forkful wires the recipe engine together: gateway, session,
// collection engine and the per-recipe coordinators.
package forkful

import (
	"net/http"

	"golang.org/x/time/rate"

	"forkful/collection"
	"forkful/comments"
	"forkful/config"
	"forkful/gateway"
	"forkful/interactions"
	"forkful/models"
	"forkful/session"
	"forkful/submit"
)

type Client struct {
	Gateway *gateway.Gateway
	Session *session.Session
	Recipes *collection.Engine
}

// New builds a client against cfg.BaseURL. The store is the external
// key-value persistence for the auth pair; a previous session is restored
// from it when still valid.
func New(cfg config.Config, store session.Store) *Client {
	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst)
	}

	var sess *session.Session
	gw := gateway.New(gateway.Config{
		BaseURL: cfg.BaseURL,
		Client:  &http.Client{Timeout: cfg.Timeout},
		Limiter: limiter,
		Token: func() string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		},
	})
	sess = session.New(gw, store)
	sess.Restore()

	return &Client{
		Gateway: gw,
		Session: sess,
		Recipes: collection.New(gw),
	}
}

// Interactions returns a rating/favorite coordinator acting as user.
func (c *Client) Interactions(user models.User) *interactions.Coordinator {
	return interactions.New(c.Gateway, user)
}

// Thread returns the comment thread manager for one recipe.
func (c *Client) Thread(recipeID, ownerID string) *comments.Thread {
	return comments.NewThread(c.Gateway, recipeID, ownerID)
}

// Submitter returns the create/edit pipeline.
func (c *Client) Submitter() *submit.Pipeline {
	return submit.New(c.Gateway)
}
