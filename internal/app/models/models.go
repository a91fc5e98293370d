package models

// Level is the academic tier a course belongs to
type Level string

const (
	LevelL1 Level = "L1"
	LevelL2 Level = "L2"
	LevelL3 Level = "L3"
	LevelM1 Level = "M1"
	LevelM2 Level = "M2"
)

// Levels lists every level in display order
var Levels = []Level{LevelL1, LevelL2, LevelL3, LevelM1, LevelM2}

// IsValid reports whether the level is one of the known tiers
func (l Level) IsValid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Role defines the user role
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}
