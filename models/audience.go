package models

// Gender values accepted for audience targeting.
var Genders = []string{"all", "male", "female", "others", "kids"}

func IsValidGender(gender string) bool {
	for _, g := range Genders {
		if g == gender {
			return true
		}
	}
	return false
}

// TargetAudience is a single-field gender targeting record.
type TargetAudience struct {
	ID        int64  `json:"id"`
	Gender    string `json:"gender"`
	IsDeleted int    `json:"is_deleted"`
	CreatedAt string `json:"created_at"`
}
