package entity

// Operator is the authenticated caller of a mutating route, taken from token claims.
type Operator struct {
	ID       string
	Username string
}
