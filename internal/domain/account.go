package domain

// Account is one monitored official account. Loaded once from static
// configuration at startup and never mutated.
type Account struct {
	ID         string
	Name       string
	Biz        string // opaque upstream source key
	CategoryID string
	IsActive   bool
}
