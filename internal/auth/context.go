package auth

import "github.com/gin-gonic/gin"

const actorKey = "actor"

// SetActor stores the authenticated caller on the gin context.
func SetActor(c *gin.Context, a Actor) {
	c.Set(actorKey, a)
	c.Set("user_id", a.UserID)
}

// ActorFrom returns the caller set by the auth middleware.
func ActorFrom(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}
