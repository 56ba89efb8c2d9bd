package entity

// Account pairs an identifier with its bcrypt password hash. Accounts are
// created once at registration and never mutated or deleted.
type Account struct {
	Id           string
	PasswordHash string
}
