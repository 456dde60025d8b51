// Package greeter demonstrates documentation rendering for go-cdoc tests.
package greeter

// Answer documents an exported constant.
const Answer = 42

// Greeter produces greeting messages.
type Greeter struct {
	// Name is indented, so it is not picked up.
	Name string
}

// Greet returns a friendly message.
// @return the greeting
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

// detached comment is not documentation

func unused() {}
