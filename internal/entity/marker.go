package entity

// Marker is the symbol a team places on the board.
type Marker struct {
	id       string
	imageRef string
}

func NewMarker(id, imageRef string) Marker {
	return Marker{id: id, imageRef: imageRef}
}

func (that Marker) ID() string {
	return that.id
}

// ImageRef - path to the image the view layer draws for this marker.
func (that Marker) ImageRef() string {
	return that.imageRef
}

// IsEmpty reports whether this is the zero Marker held by an empty cell.
func (that Marker) IsEmpty() bool {
	return that.id == ""
}

func (that Marker) Equal(other Marker) bool {
	return that.id == other.id
}
