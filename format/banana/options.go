package banana

// DefaultMaxDepth is the default maximum list nesting depth of a Decoder.
const DefaultMaxDepth = 512

type options struct {
	profile    Profile
	strict     bool
	zeroCopy   bool
	maxDepth   int
	maxListLen int
}

func defaultOptions() options {
	return options{
		profile:  None{},
		maxDepth: DefaultMaxDepth,
	}
}

// Option configures a Decoder.
type Option func(*options)

// OptProfile sets the extension profile. A nil profile selects the trivial profile None.
func OptProfile(p Profile) Option {
	return func(o *options) {
		if p == nil {
			p = None{}
		}
		o.profile = p
	}
}

// OptStrict makes Decode fail with an Invalid error if bytes remain after the element. By default, trailing
// bytes are ignored.
func OptStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// OptZeroCopy makes decoded String elements alias the input buffer instead of holding a copy. The caller must
// then not modify the input while the decoded elements are in use.
func OptZeroCopy() Option {
	return func(o *options) {
		o.zeroCopy = true
	}
}

// OptMaxDepth limits the nesting depth of lists. 0 disables the limit.
func OptMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// OptMaxListLen limits the declared element count of a single list. 0 disables the limit.
func OptMaxListLen(n int) Option {
	return func(o *options) {
		o.maxListLen = n
	}
}
