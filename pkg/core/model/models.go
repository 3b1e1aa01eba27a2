package model

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the waste category of a pickup
type Kind string

const (
	KindOrganic   Kind = "organic"
	KindInorganic Kind = "inorganic"
	KindHazardous Kind = "hazardous"
)

// Kinds lists every supported kind in display order
var Kinds = []Kind{KindOrganic, KindInorganic, KindHazardous}

func (k Kind) IsValid() bool {
	return k == KindOrganic || k == KindInorganic || k == KindHazardous
}

// Status is the lifecycle state of a pickup
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// TimeSlot is one of the fixed collection windows offered to citizens
type TimeSlot string

const (
	SlotMorning   TimeSlot = "08:00 - 12:00"
	SlotMidday    TimeSlot = "12:00 - 16:00"
	SlotAfternoon TimeSlot = "16:00 - 20:00"
)

// TimeSlots lists the slots in chronological order
var TimeSlots = []TimeSlot{SlotMorning, SlotMidday, SlotAfternoon}

var slotStartHour = map[TimeSlot]int{
	SlotMorning:   8,
	SlotMidday:    12,
	SlotAfternoon: 16,
}

// StartHour returns the hour of day the slot opens at
func (s TimeSlot) StartHour() (int, bool) {
	hour, ok := slotStartHour[s]
	return hour, ok
}

// ParseTimeSlot accepts either the full slot label or its start time ("08:00", "8")
func ParseTimeSlot(value string) (TimeSlot, error) {
	value = strings.TrimSpace(value)
	for _, slot := range TimeSlots {
		if value == string(slot) {
			return slot, nil
		}
		hour := slotStartHour[slot]
		if value == fmt.Sprintf("%02d:00", hour) || value == fmt.Sprintf("%d", hour) {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown time slot %q", value)
}

// Localities is the closed set of Bogotá localities pickups can be requested in
var Localities = []string{
	"Usaquén",
	"Chapinero",
	"Santa Fe",
	"San Cristóbal",
	"Usme",
	"Tunjuelito",
	"Bosa",
	"Kennedy",
	"Fontibón",
	"Engativá",
	"Suba",
	"Barrios Unidos",
	"Teusaquillo",
	"Los Mártires",
	"Antonio Nariño",
	"Puente Aranda",
	"La Candelaria",
	"Rafael Uribe Uribe",
	"Ciudad Bolívar",
	"Sumapaz",
}

// IsLocality reports whether name is one of the known localities
func IsLocality(name string) bool {
	for _, l := range Localities {
		if l == name {
			return true
		}
	}
	return false
}

// Pickup represents a single scheduled or completed waste collection
type Pickup struct {
	ID                string
	ScheduledAt       time.Time
	Kind              Kind
	Locality          string
	Address           string
	TimeSlot          TimeSlot
	RequestedBy       string
	Status            Status
	Staff             string // Empty until a collector is assigned
	StaffUsername     string
	CollectedWeightKg *float64 // Only recorded for inorganic pickups
	Archived          bool
}

// Weight returns the collected weight, which only exists for inorganic pickups.
// Any value stored against another kind is ignored.
func (p Pickup) Weight() (float64, bool) {
	if p.Kind != KindInorganic || p.CollectedWeightKg == nil {
		return 0, false
	}
	return *p.CollectedWeightKg, true
}
