package progress

// Light is the traffic-light classification of a progress percentage.
type Light string

const (
	LightGreen  Light = "green"
	LightYellow Light = "yellow"
	LightRed    Light = "red"
	LightGray   Light = "gray"
)

// Fixed classification thresholds. These are product constants, not
// per-organization configuration.
const (
	greenThreshold  = 70
	yellowThreshold = 30
)

// Classify maps a progress percentage to its traffic light. Exactly zero is
// gray: "no measured progress" and "no data" are indistinguishable here,
// which is the intended dashboard legend, not an oversight.
func Classify(percent float64) Light {
	switch {
	case percent >= greenThreshold:
		return LightGreen
	case percent >= yellowThreshold:
		return LightYellow
	case percent > 0:
		return LightRed
	default:
		return LightGray
	}
}

// ClassifyOptional classifies a possibly-absent progress value; nil is gray.
func ClassifyOptional(percent *float64) Light {
	if percent == nil {
		return LightGray
	}
	return Classify(*percent)
}
