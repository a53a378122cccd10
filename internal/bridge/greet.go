package bridge

import "fmt"

// GreetCommand is the registered name of Greet
const GreetCommand = "greet"

// Greet embeds name verbatim into the greeting template
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// GreetArgs is the argument object of the greet command
type GreetArgs struct {
	Name string `json:"name"`
}
