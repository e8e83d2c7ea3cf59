package models

// Crew represents a crew member, optionally assigned to a journey
type Crew struct {
	ID        int64   `json:"id" db:"id"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	JourneyID *int64  `json:"journey" db:"journey_id"`
	ImagePath *string `json:"image,omitempty" db:"image_path"`
}

// FullName returns the crew member's display name
func (c *Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CrewListItem is the list representation including the computed full name
type CrewListItem struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	JourneyID *int64  `json:"journey"`
	ImagePath *string `json:"image,omitempty"`
}

// CrewDetail embeds the assigned journey
type CrewDetail struct {
	ID        int64          `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	FullName  string         `json:"full_name"`
	Journey   *JourneyDetail `json:"journey"`
	ImagePath *string        `json:"image,omitempty"`
}

// CreateCrewRequest represents the request to create or update a crew member
type CreateCrewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	JourneyID *int64 `json:"journey"`
}

// CrewFilter holds the supported list filters for crew
type CrewFilter struct {
	FirstName string // substring match
	LastName  string // substring match
	JourneyID *int64
	Limit     int
	Offset    int
}
