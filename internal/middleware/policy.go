package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dechets_ko/internal/models"
)

// Operation names used by the authorization policy table. Routes declare the
// operation they belong to; the roles allowed for it live in one place below
// instead of ad hoc checks inside handlers.
const (
	OpTeamWrite     = "teams:write"
	OpPointWrite    = "collection-points:write"
	OpPointStatus   = "collection-points:status"
	OpTruckWrite    = "trucks:write"
	OpTruckField    = "trucks:field"
	OpTruckTrack    = "trucks:track"
	OpReportManage  = "reports:manage"
	OpReportExport  = "reports:export"
	OpScheduleWrite = "schedules:write"
	OpStopWrite     = "schedule-routes:write"
	OpStopComplete  = "schedule-routes:complete"
	OpIncidentWrite = "incidents:write"
	OpStatsRead     = "statistics:read"
	OpAdmin         = "admin"
)

var staff = []string{models.RoleCoordinator, models.RoleMunicipality, models.RoleAdmin}

// field actions are open to collectors and PRN agents on top of staff
var field = append([]string{models.RoleCollector, models.RolePRNAgent}, staff...)

var policy = map[string][]string{
	OpTeamWrite:     staff,
	OpPointWrite:    staff,
	OpPointStatus:   field,
	OpTruckWrite:    staff,
	OpTruckField:    field,
	OpTruckTrack:    field,
	OpReportManage:  staff,
	OpReportExport:  staff,
	OpScheduleWrite: staff,
	OpStopWrite:     staff,
	OpStopComplete:  field,
	OpIncidentWrite: field,
	OpStatsRead:     field,
	OpAdmin:         {models.RoleAdmin},
}

// Authorize validates the bearer token and checks the caller's role against
// the policy table entry for the given operation.
func Authorize(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := RequireAuth()
		req(c)
		if c.IsAborted() {
			return
		}

		allowed, ok := policy[op]
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Unknown operation",
			})
			return
		}

		roleIfc, exists := c.Get("role")
		role, isStr := roleIfc.(string)
		if !exists || !isStr {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Role not found in token",
			})
			return
		}
		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Insufficient permissions",
		})
	}
}
