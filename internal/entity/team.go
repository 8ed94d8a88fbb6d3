package entity

const (
	TeamNeilName = "Neilts"
	TeamGusName  = "Gusses"

	teamNeilImage = "images/neil.jpg"
	teamGusImage  = "images/gus.jpg"
)

// Team binds a name to the marker its player places.
type Team struct {
	name   string
	marker Marker
}

func NewTeam(name, imageRef string) Team {
	return Team{
		name:   name,
		marker: NewMarker(name, imageRef),
	}
}

func (that Team) Name() string {
	return that.name
}

func (that Team) Marker() Marker {
	return that.marker
}

// Teams returns the fixed registry of teams in slot order.
func Teams() [PlayerSlots]Team {
	return [PlayerSlots]Team{
		NewTeam(TeamNeilName, teamNeilImage),
		NewTeam(TeamGusName, teamGusImage),
	}
}
