package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NoticeErrorsMiddleware reports errors handlers attached with c.Error to the
// New Relic transaction started by nrgin. It is a no-op without one.
func NoticeErrorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		txn := nrgin.Transaction(c)
		if txn == nil {
			return
		}

		if caller, ok := CallerFrom(c); ok {
			txn.AddAttribute("caller.role", string(caller.Role))
		}
		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
