package domain

type Leg string

const (
	LegHomeToSchool Leg = "home_to_school"
	LegSchoolToHome Leg = "school_to_home"
)

func (l Leg) Valid() bool {
	switch l {
	case LegHomeToSchool, LegSchoolToHome:
		return true
	default:
		return false
	}
}

// Label is the short form used in rota grids and banners.
func (l Leg) Label() string {
	switch l {
	case LegHomeToSchool:
		return "AM"
	case LegSchoolToHome:
		return "PM"
	default:
		return ""
	}
}
