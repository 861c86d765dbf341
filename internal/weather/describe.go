// Package weather fetches the Open-Meteo forecast for the depot and derives
// the driver hazard hints shown on the kiosk.
package weather

// Condition is the short text and icon key for a weather code
type Condition struct {
	Text string `json:"conditionText"`
	Icon string `json:"icon"`
}

// Describe groups Open-Meteo weather codes. Negative codes mean unknown.
func Describe(code int) Condition {
	switch {
	case code == 0:
		return Condition{"Klar", "clear"}
	case code == 1 || code == 2:
		return Condition{"Leicht bewölkt", "cloud"}
	case code == 3:
		return Condition{"Bedeckt", "cloud"}
	case code >= 45 && code <= 48:
		return Condition{"Nebel", "fog"}
	case code >= 51 && code <= 67:
		return Condition{"Niesel / Regen", "rain"}
	case code >= 71 && code <= 77:
		return Condition{"Schnee", "snow"}
	case code >= 80 && code <= 82:
		return Condition{"Regen", "rain"}
	case code >= 85 && code <= 86:
		return Condition{"Starker Schneefall", "snow"}
	case code >= 95:
		return Condition{"Gewitter", "storm"}
	default:
		return Condition{"Unbekannt", "cloud"}
	}
}

const (
	HazardAquaplaning = "Achtung Aquaplaning – nasse Fahrbahnen."
	HazardIce         = "Glättegefahr / Schneefall – vorsichtig fahren."
	HazardStorm       = "Gewitter / Sturm – mit Böen rechnen."
	HazardHeat        = "Hitze – Belastung für Fahrpersonal beachten."
	HazardWind        = "Starker Wind – Seitenwindempfindliche Strecken beachten."
)

// Hazard returns the first matching driver warning, or "". The code checks
// only run when the code is known (>= 0); temp and wind may be nil.
func Hazard(code int, temp, wind *float64) string {
	if code >= 0 {
		switch {
		case code >= 80 && code <= 82 && temp != nil && *temp > 0:
			return HazardAquaplaning
		case (code >= 71 && code <= 77) || (temp != nil && *temp <= 0):
			return HazardIce
		case code >= 95:
			return HazardStorm
		}
	}
	if temp != nil && *temp >= 30 {
		return HazardHeat
	}
	if wind != nil && *wind >= 50 {
		return HazardWind
	}
	return ""
}
