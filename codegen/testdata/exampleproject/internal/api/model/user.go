package model

type User struct {
	ID   int
	Name string
}
