package user

// PasswordHasher hashes and checks secrets: account, category and photo passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
