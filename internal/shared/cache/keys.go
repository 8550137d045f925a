package cache

import "time"

// Key builders shared by services and their tests so invalidation and
// read-through always agree on the namespace.

const (
	DefaultTTL = time.Hour

	recordPrefix   = "attendance:record:"
	rulePrefix     = "attendance:rule:"
	schedulePrefix = "attendance:schedule:"
)

// RuleEpochKey versions every resolved-rule entry: rule writes invalidate
// the epoch, which orphans all resolved entries at once without scanning.
const RuleEpochKey = rulePrefix + "epoch"

func RecordKey(employeeID, date string) string {
	return recordPrefix + employeeID + ":" + date
}

func ResolvedRuleKey(epoch, employeeID, date string) string {
	return rulePrefix + "resolved:" + epoch + ":" + employeeID + ":" + date
}

func ScheduleKey(employeeID, date string) string {
	return schedulePrefix + employeeID + ":" + date
}
