package voltax

import "github.com/google/uuid"

// NewReference returns a fresh caller reference for gateways that require
// one before initiation. The "vx_" prefix keeps references recognizable in
// gateway dashboards.
func NewReference() string {
	return "vx_" + uuid.NewString()
}
