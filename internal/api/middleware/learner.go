package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/Z4rru/hangulmastery/internal/errors"
)

// LearnerHeader carries the learner identity.
const LearnerHeader = "X-Learner-ID"

const learnerKey = "learner_id"

// Learner resolves the learner id from LearnerHeader. A missing header gets
// a fresh UUID; a malformed one is rejected. The id is echoed back so
// clients can keep it.
func Learner() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(LearnerHeader)
		if id == "" {
			id = uuid.NewString()
		} else {
			parsed, err := uuid.Parse(id)
			if err != nil {
				Abort(c, apierrors.InvalidID("learner id"))
				return
			}
			id = parsed.String()
		}

		c.Set(learnerKey, id)
		c.Header(LearnerHeader, id)
		c.Next()
	}
}

// LearnerID returns the id set by Learner, or "" outside it.
func LearnerID(c *gin.Context) string {
	return c.GetString(learnerKey)
}
