package domain

import "time"

// TrackingEvent is one significant event reported by the carrier for a PIN.
type TrackingEvent struct {
	Name     string    `json:"name" bson:"name"`
	Time     time.Time `json:"time" bson:"time"`
	Location string    `json:"location" bson:"location"`
	Message  string    `json:"message" bson:"message"`
}

// TrackingResult is a parsed tracking-detail document. Events keep the carrier
// order, newest first.
type TrackingResult struct {
	Success               bool            `json:"success"`
	Message               string          `json:"message"`
	ServiceName           string          `json:"service_name"`
	ExpectedDate          time.Time       `json:"expected_date"`
	ChangedDate           *time.Time      `json:"changed_date,omitempty"`
	ChangeReason          string          `json:"change_reason,omitempty"`
	DestinationPostalCode string          `json:"destination_postal_code"`
	TrackingNumber        string          `json:"tracking_number"`
	CustomerNumber        string          `json:"customer_number"`
	Events                []TrackingEvent `json:"events"`
	Origin                Location        `json:"origin"`
	Destination           Location        `json:"destination"`
}

// LatestEvent returns the most recent event, or false when there are none.
func (r *TrackingResult) LatestEvent() (TrackingEvent, bool) {
	if len(r.Events) == 0 {
		return TrackingEvent{}, false
	}
	return r.Events[0], true
}

// RecordedEvent is a tracking event persisted against its PIN.
type RecordedEvent struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	PIN        string    `json:"pin" bson:"pin"`
	Name       string    `json:"name" bson:"name"`
	Time       time.Time `json:"time" bson:"time"`
	Location   string    `json:"location" bson:"location"`
	Message    string    `json:"message" bson:"message"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}
