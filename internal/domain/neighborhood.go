package domain

// Represents one aggregated neighborhood record: a named location with the
// number of raw address records that collapsed into it during ingestion.
// Coords is nil until the neighborhood has been geocoded.
type Neighborhood struct {
	Code   int
	Name   string
	Count  int
	Coords *Coordinates
}
