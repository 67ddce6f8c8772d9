package mocks

// MockPasswordHasher implements auth.PasswordHasher for testing. By default
// Hash prefixes the plaintext with "hashed:" and Verify checks that form.
type MockPasswordHasher struct {
	HashFn   func(plaintext string) (string, error)
	VerifyFn func(plaintext, hashed string) bool

	// VerifyCallCount tracks how many times Verify was called
	VerifyCallCount int
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(plaintext)
	}
	return "hashed:" + plaintext, nil
}

// Verify implements auth.PasswordHasher.
func (m *MockPasswordHasher) Verify(plaintext, hashed string) bool {
	m.VerifyCallCount++
	if m.VerifyFn != nil {
		return m.VerifyFn(plaintext, hashed)
	}
	return hashed == "hashed:"+plaintext
}
