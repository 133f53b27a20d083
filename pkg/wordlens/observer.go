package wordlens

// Observer receives diagnostic events from an Engine.
type Observer interface {
	OnEvent(msg string)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(msg string)

// OnEvent calls f(msg).
func (f ObserverFunc) OnEvent(msg string) { f(msg) }
