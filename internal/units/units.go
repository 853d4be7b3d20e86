// Package units provides shared constants and validation for magnetic
// field units
package units

// Unit constants
const (
	UT     = "ut"
	NT     = "nt"
	GAUSS  = "gauss"
	MGAUSS = "mgauss"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{UT, NT, GAUSS, MGAUSS}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "ut, nt, gauss, mgauss"
}

// Label returns the display label for a unit.
func Label(unit string) string {
	switch unit {
	case NT:
		return "nT"
	case GAUSS:
		return "G"
	case MGAUSS:
		return "mG"
	default:
		return "µT"
	}
}

// ConvertField converts a field magnitude from microtesla to the target
// units. Sensors and the processing pipeline work in µT throughout.
func ConvertField(fieldUT float64, targetUnits string) float64 {
	switch targetUnits {
	case NT:
		return fieldUT * 1000 // µT to nT
	case GAUSS:
		return fieldUT * 0.01 // µT to gauss
	case MGAUSS:
		return fieldUT * 10 // µT to milligauss
	case UT:
		return fieldUT // no conversion needed
	default:
		return fieldUT // default to µT if unknown unit
	}
}
