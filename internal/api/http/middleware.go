package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
)

const actorKey = "actor"

// Identity trusts the authenticated identity attached upstream (the auth
// layer terminates sessions and forwards the user as headers). Routes behind
// this middleware refuse requests without one.
func Identity() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := uuid.Parse(ctx.GetHeader("X-User-ID"))
		name := ctx.GetHeader("X-User-Name")
		if err != nil || name == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx.Set(actorKey, domain.Actor{ID: id, Name: name})
		ctx.Next()
	}
}

func actorFrom(ctx *gin.Context) domain.Actor {
	if v, ok := ctx.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}
