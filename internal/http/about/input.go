package about

// Input reads the Accept header used to pick JSON or CBOR.
type Input struct {
	Accept string `header:"Accept" doc:"application/json (default) or application/cbor"`
}
