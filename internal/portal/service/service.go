// Package service holds the business rules of the portal: invites, accounts
// and sessions, usage metering and chat turns. Handlers translate HTTP into
// calls here and map the returned sentinel errors back onto status codes.
package service

import "time"

// clock returns now() or time.Now when unset. Services take an optional Now
// field so tests can pin time.
func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
