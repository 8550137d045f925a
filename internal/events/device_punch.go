package events

import "time"

const DevicePunchTopic = "wf.attendance.device.punch.v1"

// DevicePunchEvent is the payload badge terminals publish. Location and
// device reference are stored as-is; the fleet protocol itself is not part
// of this service.
type DevicePunchEvent struct {
	EventType  string    `json:"event_type"`
	DeviceRef  string    `json:"device_ref"`
	EmployeeID string    `json:"employee_id"`
	Direction  string    `json:"direction"`
	PunchTime  time.Time `json:"punch_time"`
	Location   string    `json:"location,omitempty"`
}
