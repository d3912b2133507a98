package aiclient

import "context"

// Outcome is the single result delivered by GenerateAsync.
type Outcome struct {
	Text string
	Err  error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message returns the text on success and the classified failure message
// otherwise.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return o.Text
}

// GenerateAsync runs Generate on its own goroutine. The returned channel
// receives exactly one Outcome and is then closed. Cancelling ctx abandons
// the in-flight request and any pending backoff wait.
func (c *Client) GenerateAsync(ctx context.Context, prompt string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		text, err := c.Generate(ctx, prompt)
		out <- Outcome{Text: text, Err: err}
	}()
	return out
}
