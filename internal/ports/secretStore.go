package ports

// SecretStore supplies named secrets to the running process.
type SecretStore interface {
	// Secret returns the value and whether it was present. Blank values count as absent.
	Secret(name string) (string, bool)
}
