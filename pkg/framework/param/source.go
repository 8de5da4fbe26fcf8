package param

// Source tells a change listener where a parameter change came from.
type Source int

const (
	// SourceHost is automation from the host: patch messages or control ports.
	SourceHost Source = iota
	// SourceReset is the one-time notification sent on first activation.
	SourceReset
	// SourceDelegate is a change made from the UI/delegate thread.
	SourceDelegate
	// SourceRecall is a value restored from saved state.
	SourceRecall
)

func (s Source) String() string {
	switch s {
	case SourceHost:
		return "host"
	case SourceReset:
		return "reset"
	case SourceDelegate:
		return "delegate"
	case SourceRecall:
		return "recall"
	default:
		return "unknown"
	}
}

// ChangeListener receives parameter change notifications. It is called
// with the registry lock held and must return quickly.
type ChangeListener interface {
	OnParamChange(index int, source Source, sampleOffset int)
}
