package entity

type Reward struct {
	Base

	Title       string
	Description string
	PointsCost  int
	Category    string
}
