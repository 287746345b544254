package model

// Account represents an investment account at an institution.
type Account struct {
	ID          int64
	Name        string
	Institution string
}
