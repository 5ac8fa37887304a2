package hello

// Input carries the optional name to greet.
type Input struct {
	Name string `query:"name" default:"World" doc:"Name to greet" example:"Ada"`
}
