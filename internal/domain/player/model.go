package player

import "fmt"

// Position represents football position categories used in draft rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition converts raw input into a closed Position value. Unknown
// values are rejected here so raw strings never travel past the boundary.
func ParsePosition(raw string) (Position, error) {
	pos := Position(raw)
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("invalid player position: %q", raw)
	}
	return pos, nil
}

// Status represents player availability as reported by the data feed.
type Status string

const (
	StatusAvailable Status = "a"
	StatusInjured   Status = "i"
	StatusSuspended Status = "s"
)

var AllStatuses = map[Status]struct{}{
	StatusAvailable: {},
	StatusInjured:   {},
	StatusSuspended: {},
}

// ParseStatus converts raw input into a closed Status value.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("invalid player status: %q", raw)
	}
	return status, nil
}

// Stats carries imported performance numbers. Pointer fields distinguish
// "never imported" from zero so listings can push missing values to the end.
type Stats struct {
	NowCost       *float64
	TotalPoints   *int
	PointsPerGame *float64
	GoalsScored   *int
	Assists       *int
	Minutes       *int
}

// Player is a draftable athlete in a league's shared pool.
// Drafted is true if and only if OwnerID is set.
type Player struct {
	ID       string
	LeagueID string
	Name     string
	FullName string
	Club     string
	Position Position
	Status   Status
	Drafted  bool
	OwnerID  string
	Stats    Stats
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Club == "" {
		return fmt.Errorf("player club is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Status != "" {
		if _, ok := AllStatuses[p.Status]; !ok {
			return fmt.Errorf("invalid player status: %s", p.Status)
		}
	}
	if p.Drafted != (p.OwnerID != "") {
		return fmt.Errorf("player drafted flag and owner must agree: drafted=%t owner=%q", p.Drafted, p.OwnerID)
	}

	return nil
}
