package entity

// Snapshot is the read-only projection handed to the rendering side.
type Snapshot struct {
	Game       *Game        `json:"game"`
	StarPoints []Coordinate `json:"star_points"`
}
