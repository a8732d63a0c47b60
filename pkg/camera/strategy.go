package camera

import "errors"

// attempt is one way of opening something.
type attempt[T any] struct {
	name string
	run  func() (T, error)
}

// trySequence runs attempts in order and returns the first success.
// Every failure is reported to onFail; when all fail, the last error is
// returned together with every collected error.
func trySequence[T any](attempts []attempt[T], onFail func(name string, err error)) (T, string, error) {
	var zero T
	var errs []error
	for _, a := range attempts {
		v, err := a.run()
		if err == nil {
			return v, a.name, nil
		}
		if onFail != nil {
			onFail(a.name, err)
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return zero, "", errors.New("no capture strategy configured")
	}
	return zero, "", &sequenceError{last: errs[len(errs)-1], all: errs}
}

type sequenceError struct {
	last error
	all  []error
}

func (e *sequenceError) Error() string {
	return e.last.Error()
}

// Unwrap exposes every attempt's error to errors.Is and errors.As.
func (e *sequenceError) Unwrap() []error {
	return e.all
}
