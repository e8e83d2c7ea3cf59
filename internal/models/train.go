package models

// TrainType is a label grouping trains by kind
type TrainType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CreateTrainTypeRequest represents the request to create or update a train type
type CreateTrainTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// Train represents a train with a fixed cargo/seat layout
type Train struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	CargoNum      int     `json:"cargo_num" db:"cargo_num"`
	PlacesInCargo int     `json:"places_in_cargo" db:"places_in_cargo"`
	TrainTypeID   *int64  `json:"train_type,omitempty" db:"train_type_id"`
	ImagePath     *string `json:"image,omitempty" db:"image_path"`
}

// TotalSeats returns the number of distinct (cargo, seat) combinations the train can issue
func (t *Train) TotalSeats() int {
	return t.CargoNum * t.PlacesInCargo
}

// TrainListItem is the list representation with the denormalized type name
type TrainListItem struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	CargoNum      int     `json:"cargo_num" db:"cargo_num"`
	PlacesInCargo int     `json:"places_in_cargo" db:"places_in_cargo"`
	TrainType     *string `json:"train_type" db:"train_type"`
	TotalSeats    int     `json:"total_seats" db:"total_seats"`
	ImagePath     *string `json:"image,omitempty" db:"image_path"`
}

// TrainDetail embeds the full train type record
type TrainDetail struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	CargoNum      int        `json:"cargo_num"`
	PlacesInCargo int        `json:"places_in_cargo"`
	TrainTypeInfo *TrainType `json:"train_type_info"`
	TotalSeats    int        `json:"total_seats"`
	ImagePath     *string    `json:"image,omitempty"`
}

// CreateTrainRequest represents the request to create or update a train
type CreateTrainRequest struct {
	Name          string `json:"name" binding:"required"`
	CargoNum      *int   `json:"cargo_num" binding:"required"`
	PlacesInCargo *int   `json:"places_in_cargo" binding:"required"`
	TrainTypeID   *int64 `json:"train_type"`
}

// TrainFilter holds the supported list filters for trains
type TrainFilter struct {
	Type   string // substring match on train type name
	Limit  int
	Offset int
}
