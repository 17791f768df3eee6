package application

import "expvar"

// Counters published on /debug/vars.
var (
	metricActivitiesCreated  = expvar.NewInt("activities_created")
	metricAssignmentsCreated = expvar.NewInt("assignments_created")
	metricSubmissions        = expvar.NewInt("submissions_received")
	metricRegistrations      = expvar.NewInt("users_registered")
	metricLoginFailures      = expvar.NewInt("login_failures")
)
