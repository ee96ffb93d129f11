package core

type (
	// Logger logs messages and reports errors.
	// expected args: error | map[string]interface{} | Requester
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Requester identifies the authenticated caller of a request, if any.
	Requester struct {
		ID    string
		Email string
	}
)

func (r Requester) IsAnonymous() bool { return r.ID == "" }

// NopLogger discards everything. Used by tests and library callers that do not care.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
