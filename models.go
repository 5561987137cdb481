package coffee_roaster

// TemperaturePoint is one recorded sample on the roast curve.
// Time is seconds since roast start; both fields are stored rounded
// to one decimal.
type TemperaturePoint struct {
	Time        float64 `json:"time"`
	Temperature float64 `json:"temperature"`
}

// Marker is an operator- or system-placed annotation on the timeline.
// Markers are never mutated after creation, only removed.
type Marker struct {
	ID          string  `json:"id"`
	Time        float64 `json:"time"`
	Temperature float64 `json:"temperature"`
	Label       string  `json:"label"`
	Color       string  `json:"color"` // hex, e.g. "#FF5733"
	Notes       string  `json:"notes"`
}

// CrackStatus carries the latched crack detection state. Once a crack
// is detected it stays detected until an explicit reset or restore.
type CrackStatus struct {
	First      bool     `json:"first"`
	Second     bool     `json:"second"`
	FirstTime  *float64 `json:"first_time"`
	SecondTime *float64 `json:"second_time"`
}

// AnnotatedPoint is a TemperaturePoint with an optional marker
// attached, used for export/save.
type AnnotatedPoint struct {
	Time        float64 `json:"time"`
	Temperature float64 `json:"temperature"`
	Marker      string  `json:"marker,omitempty"`
	MarkerID    string  `json:"marker_id,omitempty"`
	MarkerColor string  `json:"marker_color,omitempty"`
	MarkerNotes string  `json:"marker_notes,omitempty"`
}

// RoastLog is one persisted roast record. ID is assigned by the log
// store, not by the core.
type RoastLog struct {
	ID          string           `json:"id"`
	Timestamp   float64          `json:"timestamp"` // unix seconds
	Date        string           `json:"date"`      // "2006-01-02 15:04:05"
	Name        string           `json:"name"`
	Profile     string           `json:"profile"`
	Notes       string           `json:"notes"`
	Duration    float64          `json:"duration"` // seconds, from last sample
	Data        []AnnotatedPoint `json:"data"`
	Markers     []Marker         `json:"markers"`
	CrackStatus CrackStatus      `json:"crack_status"`
}

// RoastStatus is the live status snapshot returned by the status
// endpoint and pushed over the websocket.
type RoastStatus struct {
	IsRoasting  bool        `json:"is_roasting"`
	Temperature float64     `json:"temperature"`
	ElapsedTime float64     `json:"elapsed_time"` // 0 when not roasting
	RoastStage  string      `json:"roast_stage"`
	CrackStatus CrackStatus `json:"crack_status"`
}

// SyncRequest is the client-reported state sent after a reconnect.
// Optional fields are pointers: nil means "client did not report".
type SyncRequest struct {
	IsRoasting  bool               `json:"is_roasting"`
	Data        []TemperaturePoint `json:"data"`
	StartTime   float64            `json:"start_time"`
	CrackStatus *CrackStatus       `json:"crack_status,omitempty"`
	Markers     []Marker           `json:"markers,omitempty"`
}

// SyncResponse is the authoritative merged view after reconciliation.
type SyncResponse struct {
	IsRoasting  bool               `json:"is_roasting"`
	Temperature float64            `json:"temperature"`
	ElapsedTime float64            `json:"elapsed_time"`
	StartTime   float64            `json:"start_time"`
	DataPoints  []TemperaturePoint `json:"data_points"`
	CrackStatus CrackStatus        `json:"crack_status"`
	Markers     []Marker           `json:"markers"`
}
