package apps

// ArgumentError reports a bad command line argument. Arg is empty when the error spans several arguments.
type ArgumentError struct {
	Arg string
	Msg string
}

func NewArgumentError(arg, msg string) *ArgumentError {
	return &ArgumentError{Arg: arg, Msg: msg}
}

func (err *ArgumentError) Error() string {
	if err.Arg == "" {
		return err.Msg
	}
	return err.Arg + ": " + err.Msg
}
