package service

// SetHasher replaces the bcrypt function used to check passwords.
func (s *ClientService) SetHasher(hash func(password []byte, cost int) ([]byte, error)) {
	s.hash = hash
}
