package stream

// Option configures a Source.
type Option func(*options)

type options struct {
	hook ErrorHook
}

// WithErrorHook routes the source's unhandled errors to h instead of the
// process-wide hook.
func WithErrorHook(h ErrorHook) Option {
	return func(o *options) {
		if h != nil {
			o.hook = h
		}
	}
}
