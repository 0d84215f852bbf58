package dotlas

// Parameter ranges enforced before any network I/O. They mirror the
// service's own request validation, so a request that passes here can still
// be rejected server-side (unknown city, unsupported commercial type) with
// a validation-kind error carrying HTTP 422.
const (
	minRadiusMeters   = 1
	maxRadiusMeters   = 10000
	minTimeMinutes    = 1
	maxTimeMinutes    = 60
	minDistanceMeters = 1
	maxDistanceMeters = 10000
)

// Modes of mobility accepted for time-based sales territories.
const (
	ModeDriving = "driving"
	ModeWalking = "walking"
)

func validCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return newValidationError("latitude %v outside [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return newValidationError("longitude %v outside [-180, 180]", lng)
	}
	return nil
}

func validMode(mode string) error {
	if mode != ModeDriving && mode != ModeWalking {
		return newValidationError("mode_of_mobility %q must be one of driving, walking", mode)
	}
	return nil
}

func nonEmpty(name, value string) error {
	if value == "" {
		return newValidationError("%s must not be empty", name)
	}
	return nil
}
