package domain

import "time"

type Engine string

const (
	EngineAny      Engine = "All"
	EnginePetrol   Engine = "Petrol"
	EngineDiesel   Engine = "Diesel"
	EngineElectric Engine = "Electric"
	EngineHybrid   Engine = "Hybrid"
)

// Valid reports whether e is a concrete engine type. EngineAny is a filter
// wildcard, not a storable value.
func (e Engine) Valid() bool {
	switch e {
	case EnginePetrol, EngineDiesel, EngineElectric, EngineHybrid:
		return true
	}
	return false
}

type Transmission string

const (
	TransmissionAny           Transmission = "All"
	TransmissionAutomatic     Transmission = "Automatic"
	TransmissionManual        Transmission = "Manual"
	TransmissionSemiAutomatic Transmission = "Semi-Automatic"
)

func (t Transmission) Valid() bool {
	switch t {
	case TransmissionAutomatic, TransmissionManual, TransmissionSemiAutomatic:
		return true
	}
	return false
}

// ColorAny is the filter wildcard for the color predicate. Stored colors are
// free text; the browse UI only offers a known subset.
const ColorAny = "All"

// Listing is a vehicle-for-sale record. Instances fetched from the store are
// treated as immutable and replaced wholesale on update.
type Listing struct {
	ID           string
	Name         string
	Price        float64
	Engine       Engine
	EngineSize   float64
	Mileage      int
	Transmission Transmission
	Color        string
	Year         int
	Description  string
	Images       []string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is an account record. Accounts are created by the auth provider; this
// service only reads and deletes them.
type User struct {
	ID        string
	Email     string
	Role      string
	CreatedAt time.Time
}

const RoleAdmin = "admin"

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
