package entity

type Player struct {
	name  string
	team  Team
	score Score
}

func NewPlayer(name string, team Team) *Player {
	return &Player{
		name: name,
		team: team,
	}
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Team() Team {
	return that.team
}

func (that *Player) Marker() Marker {
	return that.team.Marker()
}

func (that *Player) Score() int {
	return that.score.Value()
}

func (that *Player) IncrementScore() int {
	return that.score.Increment()
}
