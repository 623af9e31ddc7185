package auth

// AnonymousName is the SASL ANONYMOUS mechanism name
const AnonymousName = "ANONYMOUS"

// AnonymousMechanism implements SASL ANONYMOUS authentication.
// It is only chosen when configured explicitly.
type AnonymousMechanism struct {
	// Trace is sent as the optional trace information
	Trace string
}

// Name returns the mechanism name
func (a *AnonymousMechanism) Name() string {
	return AnonymousName
}

// Response returns the trace string; credentials are ignored
func (a *AnonymousMechanism) Response(creds Credentials) ([]byte, error) {
	return []byte(a.Trace), nil
}

// Challenge answers with the same trace string
func (a *AnonymousMechanism) Challenge(challenge []byte, creds Credentials) ([]byte, error) {
	return a.Response(creds)
}
