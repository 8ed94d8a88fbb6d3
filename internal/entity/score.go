package entity

// Score only ever grows by one.
type Score struct {
	value int
}

func (that *Score) Value() int {
	return that.value
}

func (that *Score) Increment() int {
	that.value++
	return that.value
}
